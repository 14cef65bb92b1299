package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"world-manager/core/store/storetest"
)

func TestStore_ListTables(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	fake.CreateTable("archetypes", "ArchetypeName")
	s := New(fake, zap.NewNop())

	names, err := s.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"archetypes", "rooms"}, names)
}

func TestStore_DescribeTable(t *testing.T) {
	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	s := New(fake, zap.NewNop())

	require.NoError(t, s.Put(context.Background(), "rooms", testRoom{RoomID: 1, Title: "Hallway"}))
	require.NoError(t, s.Put(context.Background(), "rooms", testRoom{RoomID: 2, Title: "Vault"}))

	info, err := s.DescribeTable(context.Background(), "rooms")
	require.NoError(t, err)
	assert.Equal(t, "rooms", info.Name)
	assert.Equal(t, "RoomID", info.KeyAttribute)
	assert.Equal(t, "N", info.KeyType)
	assert.Equal(t, "ACTIVE", info.Status)
	assert.EqualValues(t, 2, info.ItemCount)
}

func TestStore_DescribeTable_Missing(t *testing.T) {
	s := New(storetest.New(), zap.NewNop())

	_, err := s.DescribeTable(context.Background(), "ghosts")
	assert.ErrorIs(t, err, ErrNotFound)
}
