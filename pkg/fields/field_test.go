package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelFromName(t *testing.T) {
	cases := map[string]string{
		"home_phone":          "Home Phone",
		"first_name":          "First Name",
		"zip":                 "Zip",
		"street_1":            "Street 1",
		"send_christmas_card": "Send Christmas Card",
		"EMAIL_address":       "Email Address",
		"address2line":        "Address2Line",
		"o'neil":              "O'Neil",
		"mobile_phone2":       "Mobile Phone2",
		"2nd_street":          "2Nd Street",
		"home__phone":         "Home  Phone",
		"":                    "",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, LabelFromName(name))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("derived label", func(t *testing.T) {
		f := New("home_phone")
		assert.Equal(t, "home_phone", f.Name)
		assert.Equal(t, TypeText, f.Type)
		assert.Equal(t, "Home Phone", f.Label)
		assert.Equal(t, "Home Phone", f.String())
	})

	t.Run("explicit label wins", func(t *testing.T) {
		f := New("zip", WithLabel("Postal Code"))
		assert.Equal(t, "Postal Code", f.String())
	})

	t.Run("type tag", func(t *testing.T) {
		f := New("send_christmas_card", WithType(TypeCheckBox))
		assert.True(t, f.IsCheckBox())
		assert.Equal(t, "Send Christmas Card", f.Label)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, New("mobile_phone"), New("mobile_phone"))
	})
}

func TestFromNames(t *testing.T) {
	got := FromNames(Plain("first_name", "_id", "zip")...)

	assert.Len(t, got, 2)
	assert.Equal(t, []string{"first_name", "zip"}, Names(got))
	assert.Equal(t, []string{"First Name", "Zip"}, Labels(got))
}

func TestFromNames_TypedEntries(t *testing.T) {
	got := FromNames(Name("label_name"), Typed("send_christmas_card", TypeCheckBox))

	assert.Equal(t, []Field{
		{Name: "label_name", Label: "Label Name"},
		{Name: "send_christmas_card", Type: TypeCheckBox, Label: "Send Christmas Card"},
	}, got)
}

func TestFromNames_Empty(t *testing.T) {
	assert.Empty(t, FromNames())
}
