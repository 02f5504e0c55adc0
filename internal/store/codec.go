package store

import (
	"errors"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// Codec converts save data to and from stored bytes.
type Codec interface {
	Encode(inventory.SaveData) ([]byte, error)
	Decode([]byte) (inventory.SaveData, error)
}

// JSONCodec stores item ids verbatim.
type JSONCodec struct{}

func (JSONCodec) Encode(data inventory.SaveData) ([]byte, error) {
	return inventory.MarshalSaveData(data)
}

func (JSONCodec) Decode(b []byte) (inventory.SaveData, error) {
	return inventory.UnmarshalSaveData(b)
}

// CompactCodec stores numeric registry ids in place of item ids.
type CompactCodec struct {
	Registry *inventory.Registry
}

func (c CompactCodec) Encode(data inventory.SaveData) ([]byte, error) {
	if c.Registry == nil {
		return nil, errors.New("store: compact codec has no registry")
	}
	return inventory.MarshalSaveDataForStorage(data, c.Registry)
}

func (c CompactCodec) Decode(b []byte) (inventory.SaveData, error) {
	if c.Registry == nil {
		return inventory.SaveData{}, errors.New("store: compact codec has no registry")
	}
	return inventory.UnmarshalSaveDataFromStorage(b, c.Registry)
}
