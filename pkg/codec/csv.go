package codec

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
)

const utf8BOM = "\ufeff"

// ToCSV writes a header row of the fields' labels followed by one row per
// record, with values looked up by field name (missing values are empty).
// Every cell is quoted. Rows end with CRLF.
func ToCSV(records []models.Record, ordered []fields.Field) ([]byte, error) {
	var buf bytes.Buffer
	w := newQuotingWriter(&buf)

	if err := w.Write(fields.Labels(ordered)); err != nil {
		return nil, err
	}
	row := make([]string, len(ordered))
	for _, rec := range records {
		if id, ok := rec[constants.FieldID]; ok {
			rec = rec.Clone()
			rec[constants.FieldID] = models.FormatValue(idToString(id))
		}
		for i, f := range ordered {
			row[i] = models.FormatValue(rec[f.Name])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// ToCSVFrom drains and closes it, then behaves like ToCSV.
func ToCSVFrom(ctx context.Context, it Iterator, ordered []fields.Field) ([]byte, error) {
	records, err := Drain(ctx, it)
	if err != nil {
		return nil, err
	}
	return ToCSV(records, ordered)
}

// FromCSV reads a header row and returns one record per later row, mapping
// header names to raw cell text. A row whose cell count differs from the
// header's is a ParseError.
func FromCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, csvParseError(err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	records := []models.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}
		if len(row) != len(header) {
			line, _ := reader.FieldPos(0)
			return nil, errors.NewParseError("csv", line,
				fmt.Sprintf("expected %d fields, got %d", len(header), len(row)), nil)
		}
		rec := make(models.Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// FromCSVFile reads records from a CSV file on disk.
func FromCSVFile(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv source: %w", err)
	}
	defer f.Close()
	return FromCSV(f)
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.NewParseError("csv", pe.Line, pe.Err.Error(), err)
	}
	return errors.NewParseError("csv", 0, err.Error(), err)
}

// quotingWriter writes CSV with every cell quoted; encoding/csv only quotes
// cells that need it.
type quotingWriter struct {
	w io.Writer
}

func newQuotingWriter(w io.Writer) *quotingWriter {
	return &quotingWriter{w: w}
}

func (q *quotingWriter) Write(cells []string) error {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
	_, err := io.WriteString(q.w, b.String())
	return err
}
