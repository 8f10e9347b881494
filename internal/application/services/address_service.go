package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
	"github.com/jlutz777/SimpleAddress/pkg/utils"
	"go.uber.org/zap"
)

// AddressService runs owner-scoped address operations on top of a RecordStore.
// The owner argument must come from an authenticated identity, never from
// request content.
type AddressService struct {
	store  RecordStore
	logger *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(store RecordStore, logger *zap.Logger) *AddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{store: store, logger: logger}
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	IDs     []string `json:"ids"`
}

// OK reports whether every row was stored.
func (r *ImportResult) OK() bool {
	return r.Failed == 0
}

// Fields returns the creatable field descriptors of the address entity.
func (s *AddressService) Fields() []fields.Field {
	return s.store.Definition().CreationFields()
}

// List reads the owner's records into memory.
func (s *AddressService) List(ctx context.Context, owner string, opts persistence.ListOptions) ([]models.Record, error) {
	it, err := s.store.List(ctx, owner, opts)
	if err != nil {
		return nil, err
	}
	return codec.Drain(ctx, it)
}

// ExportJSON encodes the owner's records as an Extended JSON array.
func (s *AddressService) ExportJSON(ctx context.Context, owner string, opts persistence.ListOptions) ([]byte, error) {
	it, err := s.store.List(ctx, owner, opts)
	if err != nil {
		return nil, err
	}
	return codec.Encode(ctx, it)
}

// ExportCSV renders the owner's records as CSV. An empty subset exports every
// record with the creation fields; a named subset applies its own filter and
// field list.
func (s *AddressService) ExportCSV(ctx context.Context, owner, subset string) ([]byte, error) {
	def := s.store.Definition()

	ordered := def.CreationFields()
	var filter map[string]interface{}
	if subset != "" {
		var ok bool
		ordered, ok = def.Subset(subset)
		if !ok {
			return nil, errors.NewValidationError("subset", fmt.Sprintf("unknown subset %q", subset))
		}
		filter = def.SubsetFilter(subset)
	}

	it, err := s.store.List(ctx, owner, persistence.ListOptions{Filter: filter})
	if err != nil {
		return nil, err
	}
	return codec.ToCSVFrom(ctx, it, ordered)
}

// Create decodes a single JSON object and stores it for owner. Any identifier
// in the body is ignored.
func (s *AddressService) Create(ctx context.Context, owner string, body []byte) (string, error) {
	decoded, err := codec.Decode(body)
	if err != nil {
		return "", err
	}
	if !decoded.Single {
		return "", errors.NewValidationError("body", "expected a single object")
	}

	id, err := s.store.Create(ctx, decoded.Body(), owner)
	if err != nil {
		s.logger.Warn("create failed", zap.String("owner", owner), zap.Error(err))
		return "", err
	}
	return id, nil
}

// Save decodes one object or an array of objects and updates each by its
// identifier. It reports true only when every record was updated.
func (s *AddressService) Save(ctx context.Context, owner string, body []byte) (bool, error) {
	decoded, err := codec.Decode(body)
	if err != nil {
		return false, err
	}
	if decoded.Single {
		return s.store.Update(ctx, decoded.ID(), decoded.Body(), owner)
	}

	ok, err := s.store.UpdateMultiple(ctx, decoded.IDs, decoded.Bodies, owner)
	if err == nil && !ok {
		s.logger.Info("partial update", zap.String("owner", owner), zap.Int("records", len(decoded.IDs)))
	}
	return ok, err
}

// Delete removes the owner's record with the given hex identifier. A malformed
// identifier matches nothing.
func (s *AddressService) Delete(ctx context.Context, owner, id string) (bool, error) {
	oid, err := codec.ParseID(id)
	if err != nil {
		return false, nil
	}
	return s.store.Delete(ctx, oid, owner)
}

// ImportCSV parses a CSV stream and imports every row for owner.
func (s *AddressService) ImportCSV(ctx context.Context, owner string, r io.Reader) (*ImportResult, error) {
	records, err := codec.FromCSV(r)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, owner, records)
}

// Import creates one record per input row. Column names may be field names or
// field labels, so an exported file imports cleanly. Rows are created in order
// and a failed row does not stop the rest.
func (s *AddressService) Import(ctx context.Context, owner string, rows []models.Record) (*ImportResult, error) {
	def := s.store.Definition()
	byLabel := make(map[string]fields.Field, len(def.Fields))
	for _, f := range def.Fields {
		byLabel[strings.ToLower(f.Label)] = f
	}

	result := &ImportResult{IDs: make([]string, 0, len(rows))}
	for i, row := range rows {
		record := normalizeRow(row, def.Field, byLabel)
		id, err := s.store.Create(ctx, record, owner)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			s.logger.Warn("import row failed", zap.String("owner", owner), zap.Int("row", i+1), zap.Error(err))
			continue
		}
		result.Created++
		result.IDs = append(result.IDs, id)
	}

	s.logger.Info("import finished",
		zap.String("owner", owner),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed))
	return result, nil
}

// normalizeRow maps labels to field names and converts check box text to
// booleans. Identifier and owner columns are dropped.
func normalizeRow(row models.Record, lookup func(string) (fields.Field, bool), byLabel map[string]fields.Field) models.Record {
	out := make(models.Record, len(row))
	for key, value := range row {
		if key == constants.FieldID || key == constants.FieldOwner {
			continue
		}
		f, ok := lookup(key)
		if !ok {
			f, ok = byLabel[strings.ToLower(key)]
		}
		if !ok {
			out[key] = value
			continue
		}
		if f.IsCheckBox() {
			out[f.Name] = utils.ToBool(value)
			continue
		}
		out[f.Name] = value
	}
	return out
}
