package fields

// Spec is one entry of a field name list: either a bare name or a name paired
// with a type tag.
type Spec struct {
	Name string
	Type string
}

// Name is a Spec for a plain text field.
func Name(name string) Spec {
	return Spec{Name: name}
}

// Typed is a Spec for a field with a type tag.
func Typed(name, fieldType string) Spec {
	return Spec{Name: name, Type: fieldType}
}

// Plain turns bare names into Specs.
func Plain(names ...string) []Spec {
	specs := make([]Spec, len(names))
	for i, n := range names {
		specs[i] = Name(n)
	}
	return specs
}

// FromNames builds the ordered Fields for a name list. Entries naming the
// identifier field are skipped.
func FromNames(specs ...Spec) []Field {
	out := make([]Field, 0, len(specs))
	for _, s := range specs {
		if s.Name == IDField {
			continue
		}
		out = append(out, New(s.Name, WithType(s.Type)))
	}
	return out
}
