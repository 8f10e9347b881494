package schema

import (
	"github.com/jlutz777/SimpleAddress/pkg/fields"
)

// Definition describes a record collection: its ordered creatable fields and
// any named alternate field subsets. Field order drives UI order and CSV
// column order. Definitions are built at startup and never mutated.
type Definition struct {
	Name       string
	Collection string
	Fields     []fields.Field
	// Subsets maps a subset name to the field names it projects, in output order.
	Subsets map[string][]string
	// SubsetFilters holds the record filter that accompanies a subset export.
	SubsetFilters map[string]map[string]interface{}
}

// NewDefinition builds a Definition from a field name list. The identifier
// field is dropped if listed.
func NewDefinition(name, collection string, specs ...fields.Spec) Definition {
	return Definition{
		Name:          name,
		Collection:    collection,
		Fields:        fields.FromNames(specs...),
		Subsets:       map[string][]string{},
		SubsetFilters: map[string]map[string]interface{}{},
	}
}

// WithSubset returns a copy of d carrying an extra named subset and the filter
// its export applies (nil for none).
func (d Definition) WithSubset(name string, filter map[string]interface{}, fieldNames ...string) Definition {
	subsets := make(map[string][]string, len(d.Subsets)+1)
	for k, v := range d.Subsets {
		subsets[k] = v
	}
	subsets[name] = append([]string(nil), fieldNames...)

	filters := make(map[string]map[string]interface{}, len(d.SubsetFilters)+1)
	for k, v := range d.SubsetFilters {
		filters[k] = v
	}
	if filter != nil {
		filters[name] = filter
	}

	d.Subsets = subsets
	d.SubsetFilters = filters
	return d
}

// CreationFields returns the creatable fields in declared order. The returned
// slice is a copy.
func (d Definition) CreationFields() []fields.Field {
	out := make([]fields.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == fields.IDField {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Field looks up a creatable field by name.
func (d Definition) Field(name string) (fields.Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return fields.Field{}, false
}

// Subset projects a named subset onto Fields. Names also declared in the full
// set reuse that descriptor (keeping its type and label).
func (d Definition) Subset(name string) ([]fields.Field, bool) {
	names, ok := d.Subsets[name]
	if !ok {
		return nil, false
	}
	out := make([]fields.Field, 0, len(names))
	for _, n := range names {
		if n == fields.IDField {
			continue
		}
		if f, found := d.Field(n); found {
			out = append(out, f)
			continue
		}
		out = append(out, fields.New(n))
	}
	return out, true
}

// SubsetFilter returns a copy of the record filter for a subset export.
func (d Definition) SubsetFilter(name string) map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range d.SubsetFilters[name] {
		out[k] = v
	}
	return out
}

// SubsetNames lists the declared subsets.
func (d Definition) SubsetNames() []string {
	names := make([]string, 0, len(d.Subsets))
	for n := range d.Subsets {
		names = append(names, n)
	}
	return names
}
