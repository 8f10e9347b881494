package codec

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToCSV_HeaderUsesLabelsAndQuotesEverything(t *testing.T) {
	out, err := ToCSV(
		[]models.Record{{"_id": 1, "first_name": "A"}},
		[]fields.Field{fields.New("first_name")},
	)
	require.NoError(t, err)

	assert.Equal(t, "\"First Name\"\r\n\"A\"\r\n", string(out))
}

func TestToCSV_OrderMissingAndEscaping(t *testing.T) {
	ordered := fields.FromNames(fields.Plain("last_name", "first_name", "zip")...)
	records := []models.Record{
		{"first_name": `Say "hi"`, "last_name": "Smith, Jr."},
		{"zip": int32(50010), "first_name": "Ann"},
	}

	out, err := ToCSV(records, ordered)
	require.NoError(t, err)

	want := strings.Join([]string{
		`"Last Name","First Name","Zip"`,
		`"Smith, Jr.","Say ""hi""",""`,
		`"","Ann","50010"`,
	}, "\r\n") + "\r\n"
	assert.Equal(t, want, string(out))
}

func TestToCSV_IdentifierStringified(t *testing.T) {
	oid := primitive.NewObjectID()
	rec := models.Record{"_id": oid, "city": "Ames"}

	out, err := ToCSV([]models.Record{rec}, []fields.Field{fields.New("_id", fields.WithLabel("Id")), fields.New("city")})
	require.NoError(t, err)

	assert.Equal(t, "\"Id\",\"City\"\r\n\""+oid.Hex()+"\",\"Ames\"\r\n", string(out))
	assert.Equal(t, oid, rec["_id"])
}

func TestToCSV_NoRecords(t *testing.T) {
	out, err := ToCSV(nil, fields.FromNames(fields.Plain("city")...))
	require.NoError(t, err)
	assert.Equal(t, "\"City\"\r\n", string(out))
}

func TestToCSVFrom_ClosesIterator(t *testing.T) {
	it := NewSliceIterator([]models.Record{{"city": "Ames"}})

	out, err := ToCSVFrom(context.Background(), it, fields.FromNames(fields.Plain("city")...))
	require.NoError(t, err)
	assert.True(t, it.Closed())
	assert.Equal(t, "\"City\"\r\n\"Ames\"\r\n", string(out))
}

func TestFromCSV(t *testing.T) {
	input := "first_name,zip\nAda,01234\n\"Lovelace, A\",\n"

	records, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []models.Record{
		{"first_name": "Ada", "zip": "01234"},
		{"first_name": "Lovelace, A", "zip": ""},
	}, records)
}

func TestFromCSV_StripsByteOrderMark(t *testing.T) {
	records, err := FromCSV(strings.NewReader("\ufeffcity\nAmes\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"city": "Ames"}}, records)
}

func TestFromCSV_FieldCountMismatch(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.True(t, errors.IsParse(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestFromCSV_ShortRow(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b,c\n1,2,3\n4,5\n"))
	assert.True(t, errors.IsParse(err))
}

func TestFromCSV_BareQuote(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a\nx\"y\"z\n"))
	assert.True(t, errors.IsParse(err))
}

func TestFromCSV_Empty(t *testing.T) {
	records, err := FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFromCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("city,state\nAmes,IA\n"), 0o600))

	records, err := FromCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"city": "Ames", "state": "IA"}}, records)

	_, err = FromCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
