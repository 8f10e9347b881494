package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddressService_ExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("christmas subset filters and projects", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)
		it := codec.NewSliceIterator([]models.Record{
			{"label_name": "The Smiths", "city": "Ames", "first_name": "Ann", "send_christmas_card": true},
		})
		store.On("List", ctx, "alice", persistence.ListOptions{
			Filter: map[string]interface{}{"send_christmas_card": true},
		}).Return(it, nil)

		out, err := svc.ExportCSV(ctx, "alice", "christmas")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(out), "\r\n"), "\r\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `"Label Name","Street 1","Street 2","City","State","Zip","Country"`, lines[0])
		assert.Equal(t, `"The Smiths","","","Ames","","",""`, lines[1])
		assert.True(t, it.Closed())
		store.AssertExpectations(t)
	})

	t.Run("all records with creation fields", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)
		it := codec.NewSliceIterator(nil)
		store.On("List", ctx, "alice", persistence.ListOptions{}).Return(it, nil)

		out, err := svc.ExportCSV(ctx, "alice", "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), `"First Name","Last Name"`))
		assert.True(t, strings.HasSuffix(string(out), `"Send Christmas Card"`+"\r\n"))
		assert.True(t, it.Closed())
	})

	t.Run("unknown subset", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)

		_, err := svc.ExportCSV(ctx, "alice", "birthday")
		assert.True(t, errors.IsValidation(err))
		store.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAddressService_ExportJSON(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	svc := NewAddressService(store, nil)

	oid := primitive.NewObjectID()
	it := codec.NewSliceIterator([]models.Record{{"_id": oid, "city": "Ames", "userName": "alice"}})
	opts := persistence.ListOptions{SortField: "city"}
	store.On("List", ctx, "alice", opts).Return(it, nil)

	out, err := svc.ExportJSON(ctx, "alice", opts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"`+oid.Hex()+`","city":"Ames","userName":"alice"}]`, string(out))
	assert.True(t, it.Closed())
}

func TestAddressService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("client identifier is discarded", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)
		store.On("Create", ctx, models.Record{"first_name": "Ada"}, "alice").Return("abc", nil)

		id, err := svc.Create(ctx, "alice", []byte(`{"_id":"5f0000000000000000000000","first_name":"Ada"}`))
		require.NoError(t, err)
		assert.Equal(t, "abc", id)
		store.AssertExpectations(t)
	})

	t.Run("array rejected", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)

		_, err := svc.Create(ctx, "alice", []byte(`[{"first_name":"Ada"}]`))
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)

		_, err := svc.Create(ctx, "alice", []byte(`{"first_name":`))
		assert.True(t, errors.IsParse(err))
	})
}

func TestAddressService_Save(t *testing.T) {
	ctx := context.Background()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("single object updates", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)
		store.On("Update", ctx, a, models.Record{"city": "Ames"}, "alice").Return(true, nil)

		ok, err := svc.Save(ctx, "alice", []byte(`{"_id":"`+a.Hex()+`","city":"Ames"}`))
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("array updates pairwise", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewAddressService(store, nil)
		store.On("UpdateMultiple", ctx,
			[]primitive.ObjectID{a, b},
			[]models.Record{{"city": "Ames"}, {"city": "Boise"}}, "alice").Return(false, nil)

		ok, err := svc.Save(ctx, "alice", []byte(`[{"_id":"`+a.Hex()+`","city":"Ames"},{"_id":"`+b.Hex()+`","city":"Boise"}]`))
		require.NoError(t, err)
		assert.False(t, ok)
		store.AssertExpectations(t)
	})
}

func TestAddressService_Delete(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	svc := NewAddressService(store, nil)

	oid := primitive.NewObjectID()
	store.On("Delete", ctx, oid, "alice").Return(true, nil)

	ok, err := svc.Delete(ctx, "alice", oid.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, "alice", "not-an-id")
	require.NoError(t, err)
	assert.False(t, ok)
	store.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAddressService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	svc := NewAddressService(store, nil)

	csvText := "\"First Name\",\"city\",\"Send Christmas Card\",\"_id\",\"userName\",\"nickname\"\r\n" +
		"\"Ann\",\"Ames\",\"x\",\"\",\"bob\",\"Annie\"\r\n" +
		"\"Bo\",\"Boise\",\"\",\"\",\"\",\"\"\r\n"

	store.On("Create", ctx, models.Record{
		"first_name": "Ann", "city": "Ames", "send_christmas_card": true, "nickname": "Annie",
	}, "alice").Return("id-1", nil)
	store.On("Create", ctx, models.Record{
		"first_name": "Bo", "city": "Boise", "send_christmas_card": false, "nickname": "",
	}, "alice").Return("", errors.NewStorageError("insert", assert.AnError))

	result, err := svc.ImportCSV(ctx, "alice", strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.OK())
	assert.Equal(t, []string{"id-1"}, result.IDs)
	store.AssertExpectations(t)
}

func TestAddressService_ImportCSV_BadFile(t *testing.T) {
	store := new(MockRecordStore)
	svc := NewAddressService(store, nil)

	_, err := svc.ImportCSV(context.Background(), "alice", strings.NewReader("a,b\n1,2,3\n"))
	assert.True(t, errors.IsParse(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddressService_Fields(t *testing.T) {
	svc := NewAddressService(new(MockRecordStore), nil)
	got := svc.Fields()
	require.Len(t, got, 17)
	assert.Equal(t, "first_name", got[0].Name)
	assert.True(t, got[16].IsCheckBox())
}
