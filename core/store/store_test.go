package store

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"world-manager/core/store/mocks"
	"world-manager/core/store/storetest"
)

type testRoom struct {
	RoomID int64  `dynamodbav:"RoomID"`
	Title  string `dynamodbav:"Title"`
}

func TestStore_PutAndGet(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	s := New(fake, zap.NewNop())

	err := s.Put(context.Background(), "rooms", testRoom{RoomID: 1, Title: "Hallway"})
	require.NoError(t, err)

	var got testRoom
	err = s.Get(context.Background(), "rooms", NumKey("RoomID", 1), &got)
	require.NoError(t, err)
	assert.Equal(t, testRoom{RoomID: 1, Title: "Hallway"}, got)
}

func TestStore_Get_NotFound(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	s := New(fake, zap.NewNop())

	var got testRoom
	err := s.Get(context.Background(), "rooms", NumKey("RoomID", 99), &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Get_APIError(t *testing.T) {
	api := new(mocks.API)
	api.On("GetItem", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	s := New(api, zap.NewNop())

	var got testRoom
	err := s.Get(context.Background(), "rooms", NumKey("RoomID", 1), &got)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	api.AssertExpectations(t)
}

func TestStore_Scan_Paging(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	fake.PageSize = 2
	s := New(fake, zap.NewNop())

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.Put(context.Background(), "rooms", testRoom{RoomID: i, Title: "Room"}))
	}

	var rooms []testRoom
	err := s.Scan(context.Background(), "rooms", &rooms)
	require.NoError(t, err)
	assert.Len(t, rooms, 5)
	// 2 + 2 + 1 items across three pages
	assert.Equal(t, 3, fake.Calls["Scan"])
}

func TestStore_Delete(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("items", "ItemID")
	s := New(fake, zap.NewNop())

	require.NoError(t, s.Put(context.Background(), "items", map[string]string{"ItemID": "abc"}))
	require.NoError(t, s.Delete(context.Background(), "items", StrKey("ItemID", "abc")))
	assert.False(t, fake.Has("items", "abc"))

	// Deleting an absent item is not an error.
	assert.NoError(t, s.Delete(context.Background(), "items", StrKey("ItemID", "abc")))
}

func TestStore_Update(t *testing.T) {
	t.Run("Upsert Creates Missing Item", func(t *testing.T) {
		fake := storetest.New()
		fake.CreateTable("rooms", "RoomID")
		s := New(fake, zap.NewNop())

		err := s.Update(context.Background(), "rooms", NumKey("RoomID", 7),
			map[string]any{"Title": "Vault"}, Upsert)
		require.NoError(t, err)

		var got testRoom
		require.NoError(t, s.Get(context.Background(), "rooms", NumKey("RoomID", 7), &got))
		assert.Equal(t, "Vault", got.Title)
	})

	t.Run("ExistingOnly Rejects Missing Item", func(t *testing.T) {
		fake := storetest.New()
		fake.CreateTable("rooms", "RoomID")
		s := New(fake, zap.NewNop())

		err := s.Update(context.Background(), "rooms", NumKey("RoomID", 7),
			map[string]any{"Title": "Vault"}, ExistingOnly)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ExistingOnly Updates Present Item", func(t *testing.T) {
		fake := storetest.New()
		fake.CreateTable("rooms", "RoomID")
		s := New(fake, zap.NewNop())
		require.NoError(t, s.Put(context.Background(), "rooms", testRoom{RoomID: 7, Title: "Hallway"}))

		err := s.Update(context.Background(), "rooms", NumKey("RoomID", 7),
			map[string]any{"Title": "Vault"}, ExistingOnly)
		require.NoError(t, err)

		var got testRoom
		require.NoError(t, s.Get(context.Background(), "rooms", NumKey("RoomID", 7), &got))
		assert.Equal(t, "Vault", got.Title)
	})

	t.Run("Empty Set Is An Error", func(t *testing.T) {
		s := New(storetest.New(), zap.NewNop())
		err := s.Update(context.Background(), "rooms", NumKey("RoomID", 7), nil, Upsert)
		assert.Error(t, err)
	})
}

func TestStore_Update_ExpressionShape(t *testing.T) {
	api := new(mocks.API)
	api.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		// Fields sorted, so the expression is stable across runs.
		return aws.ToString(in.UpdateExpression) == "SET #f0 = :v0, #f1 = :v1" &&
			in.ExpressionAttributeNames["#f0"] == "Area" &&
			in.ExpressionAttributeNames["#f1"] == "Title" &&
			in.ConditionExpression == nil
	})).Return(&dynamodb.UpdateItemOutput{}, nil)

	s := New(api, zap.NewNop())
	err := s.Update(context.Background(), "rooms", NumKey("RoomID", 1),
		map[string]any{"Title": "Vault", "Area": "keep"}, Upsert)
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestStore_BatchPut_Chunking(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	s := New(fake, zap.NewNop())

	items := make([]any, 0, 60)
	for i := int64(1); i <= 60; i++ {
		items = append(items, testRoom{RoomID: i, Title: "Room"})
	}

	err := s.BatchPut(context.Background(), "rooms", items)
	require.NoError(t, err)
	assert.Equal(t, 60, fake.Len("rooms"))
	// 60 items in chunks of 25 means three calls.
	assert.Equal(t, 3, fake.Calls["BatchWriteItem"])
}

func TestStore_BatchPut_RetriesUnprocessed(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	fake.UnprocessedOnce = true
	s := New(fake, zap.NewNop())

	err := s.BatchPut(context.Background(), "rooms", []any{testRoom{RoomID: 1, Title: "Hallway"}})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Len("rooms"))
	assert.Equal(t, 2, fake.Calls["BatchWriteItem"])
}

func TestStore_BatchPut_ContextCanceledDuringBackoff(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	fake.UnprocessedOnce = true
	s := New(fake, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.BatchPut(ctx, "rooms", []any{testRoom{RoomID: 1, Title: "Hallway"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_BatchPut_Empty(t *testing.T) {
	fake := storetest.New()
	s := New(fake, zap.NewNop())

	assert.NoError(t, s.BatchPut(context.Background(), "rooms", nil))
	assert.Zero(t, fake.Calls["BatchWriteItem"])
}
