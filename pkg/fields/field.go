// Package fields describes the user-editable attributes of a record.
//
// A Field carries the storage name of an attribute, an optional type tag used by
// the UI (for example a check box), and a human readable label. Labels follow a
// naming convention: snake_case names become space separated, title-cased words,
// so "home_phone" is shown as "Home Phone".
package fields

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Known type tags. The empty tag means plain text input.
const (
	TypeText     = ""
	TypeCheckBox = "checkBox"
)

// IDField is the reserved identifier name; it is never an editable field.
const IDField = "_id"

// Field describes one record attribute.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Option customises a Field built by New.
type Option func(*Field)

// WithType sets the field's type tag.
func WithType(fieldType string) Option {
	return func(f *Field) { f.Type = fieldType }
}

// WithLabel overrides the label derived from the name.
func WithLabel(label string) Option {
	return func(f *Field) { f.Label = label }
}

// New builds a Field. Without WithLabel (or with an empty label) the label is
// derived from the name by LabelFromName.
func New(name string, opts ...Option) Field {
	f := Field{Name: name}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Label == "" {
		f.Label = LabelFromName(name)
	}
	return f
}

// String returns the display label.
func (f Field) String() string {
	return f.Label
}

// IsCheckBox reports whether the field is rendered as a check box.
func (f Field) IsCheckBox() bool {
	return f.Type == TypeCheckBox
}

// LabelFromName derives a display label from a snake_case name: underscores
// become spaces and every run of letters is title-cased, so the first letter of
// a run is upper-cased and the rest lower-cased. Digits and punctuation end a
// run: "address2line" becomes "Address2Line" and "o'neil" becomes "O'Neil".
func LabelFromName(name string) string {
	withSpaces := strings.ReplaceAll(name, "_", " ")
	// Caser values are stateful, build one per call.
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(withSpaces))
	start := -1
	for i, r := range withSpaces {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(withSpaces[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(withSpaces[start:]))
	}
	return b.String()
}

// Names returns the storage names of the given fields in order.
func Names(fs []Field) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Labels returns the display labels of the given fields in order.
func Labels(fs []Field) []string {
	labels := make([]string, len(fs))
	for i, f := range fs {
		labels[i] = f.Label
	}
	return labels
}
