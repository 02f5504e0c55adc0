package inventory

import (
	"reflect"
	"strings"
	"testing"
)

func sampleSave() SaveData {
	return SaveData{
		Width:  10,
		Height: 4,
		Grid: []SlotRecord{
			{Item: "healing-potion", Index: 0},
			{Item: "town-scroll", Index: 12},
		},
		Equipment: map[Category]ItemID{CategoryRing: "gold-ring"},
	}
}

func TestSaveDataJSONRoundTrip(t *testing.T) {
	b, err := MarshalSaveData(sampleSave())
	if err != nil {
		t.Fatalf("MarshalSaveData: %v", err)
	}
	if !strings.Contains(string(b), `"ring":"gold-ring"`) {
		t.Fatalf("equipment not keyed by category name: %s", b)
	}
	out, err := UnmarshalSaveData(b)
	if err != nil {
		t.Fatalf("UnmarshalSaveData: %v", err)
	}
	if !reflect.DeepEqual(out, sampleSave()) {
		t.Fatalf("got %+v, want %+v", out, sampleSave())
	}

	if _, err := UnmarshalSaveData([]byte("{")); err == nil {
		t.Fatalf("truncated JSON accepted")
	}
}

func TestSaveDataStorageRoundTrip(t *testing.T) {
	reg := SampleCatalog()
	b, err := MarshalSaveDataForStorage(sampleSave(), reg)
	if err != nil {
		t.Fatalf("MarshalSaveDataForStorage: %v", err)
	}
	plain, _ := MarshalSaveData(sampleSave())
	if len(b) >= len(plain) {
		t.Fatalf("compact form is %d bytes, plain is %d", len(b), len(plain))
	}

	out, err := UnmarshalSaveDataFromStorage(b, reg)
	if err != nil {
		t.Fatalf("UnmarshalSaveDataFromStorage: %v", err)
	}
	if !reflect.DeepEqual(out, sampleSave()) {
		t.Fatalf("got %+v, want %+v", out, sampleSave())
	}
}

func TestSaveDataStorageErrors(t *testing.T) {
	if _, err := MarshalSaveDataForStorage(sampleSave(), nil); err == nil {
		t.Fatalf("marshal without registry accepted")
	}
	if _, err := UnmarshalSaveDataFromStorage([]byte(`{}`), nil); err == nil {
		t.Fatalf("unmarshal without registry accepted")
	}

	unknown := sampleSave()
	unknown.Grid = append(unknown.Grid, SlotRecord{Item: "mystery", Index: 3})
	if _, err := MarshalSaveDataForStorage(unknown, SampleCatalog()); err == nil {
		t.Fatalf("unknown item marshalled")
	}

	if _, err := UnmarshalSaveDataFromStorage([]byte(`{"w":10,"h":4,"g":[{"i":999,"s":0}]}`), SampleCatalog()); err == nil {
		t.Fatalf("unknown numeric id accepted")
	}
}
