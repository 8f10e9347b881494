package schema

import (
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
)

// Address is the address book contact.
var Address = NewDefinition("address", constants.CollectionAddresses,
	fields.Name("first_name"),
	fields.Name("last_name"),
	fields.Name("spouse"),
	fields.Name("email_address"),
	fields.Name("street_1"),
	fields.Name("street_2"),
	fields.Name("city"),
	fields.Name("state"),
	fields.Name("zip"),
	fields.Name("country"),
	fields.Name("home_phone"),
	fields.Name("mobile_phone"),
	fields.Name("relationship"),
	fields.Name("title"),
	fields.Name("children"),
	fields.Name("label_name"),
	fields.Typed(constants.FieldSendChristmasCard, fields.TypeCheckBox),
).WithSubset(constants.SubsetChristmas,
	map[string]interface{}{constants.FieldSendChristmasCard: true},
	"label_name", "street_1", "street_2", "city", "state", "zip", "country",
)
