package store

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

func sampleSave() inventory.SaveData {
	return inventory.SaveData{
		Width:  10,
		Height: 4,
		Grid: []inventory.SlotRecord{
			{Item: "healing-potion", Index: 0},
			{Item: "short-sword", Index: 3},
		},
		Equipment: map[inventory.Category]inventory.ItemID{
			inventory.CategoryRing: "gold-ring",
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Load(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)

	data := sampleSave()
	require.NoError(t, s.Save(ctx, "42", data))
	data.Grid[0].Index = 99

	got, ok, err := s.Load(ctx, "42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, got.Grid[0].Index)
	assert.Equal(t, inventory.ItemID("gold-ring"), got.Equipment[inventory.CategoryRing])

	require.NoError(t, s.Delete(ctx, "42"))
	_, ok, err = s.Load(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompactCodec(t *testing.T) {
	reg := inventory.SampleCatalog()
	c := CompactCodec{Registry: reg}

	raw, err := c.Encode(sampleSave())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "short-sword")

	got, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, sampleSave(), got)

	_, err = c.Encode(inventory.SaveData{Grid: []inventory.SlotRecord{{Item: "unknown"}}})
	assert.Error(t, err)
	_, err = CompactCodec{}.Encode(sampleSave())
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	raw, err := JSONCodec{}.Encode(sampleSave())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "short-sword")

	got, err := JSONCodec{}.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, sampleSave(), got)
}

func TestRedisStoreKeyAndUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewRedisStore(client, "gridstash:save:", nil)
	assert.Equal(t, "gridstash:save:42", s.Key("42"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, ok, err := s.Load(ctx, "42")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Save(ctx, "42", sampleSave()))
}
