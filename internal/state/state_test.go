package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		numeric bool
	}{
		{"42", 42, true},
		{" 21.5 ", 21.5, true},
		{"-3.25", -3.25, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"unavailable", 0, false},
		{"unknown", 0, false},
		{"–", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"12 °C", 0, false},
	}
	for _, tt := range tests {
		got := Parse(tt.raw)
		if got.Numeric != tt.numeric || got.Number != tt.want {
			t.Errorf("Parse(%q) = %+v, want {%v %v}", tt.raw, got, tt.want, tt.numeric)
		}
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := Snapshot{
		"sensor.a": {State: "42", Attributes: Attributes{UnitOfMeasurement: "°C", FriendlyName: "Boiler"}},
	}

	v, ok := snap.Lookup("sensor.a")
	if !ok {
		t.Fatal("sensor.a not found")
	}
	if v.State != "42" || v.Unit != "°C" || v.Name != "Boiler" {
		t.Errorf("sensor.a: got %+v", v)
	}

	if _, ok := snap.Lookup("sensor.missing"); ok {
		t.Error("missing entity reported as present")
	}
	if _, ok := snap.Lookup(""); ok {
		t.Error("empty entity id reported as present")
	}

	if n, ok := Numeric(snap, "sensor.a"); !ok || n != 42 {
		t.Errorf("Numeric(sensor.a) = %v, %v", n, ok)
	}
	if _, ok := Numeric(snap, "sensor.missing"); ok {
		t.Error("Numeric(sensor.missing) reported numeric")
	}
}

func TestDecodeList(t *testing.T) {
	data := []byte(`[
		{"entity_id": "sensor.temp", "state": "21.4", "attributes": {"unit_of_measurement": "°C", "friendly_name": "Temp"}},
		{"entity_id": "sensor.door", "state": "open", "attributes": {}},
		{"state": "orphan"}
	]`)
	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(snap))
	}
	if snap["sensor.temp"].Attributes.UnitOfMeasurement != "°C" {
		t.Errorf("sensor.temp unit: got %q", snap["sensor.temp"].Attributes.UnitOfMeasurement)
	}
}

func TestDecodeMap(t *testing.T) {
	data := []byte(`{"sensor.power": {"state": "1200", "attributes": {"unit_of_measurement": "W"}}}`)
	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	st, ok := snap["sensor.power"]
	if !ok {
		t.Fatal("sensor.power missing")
	}
	if st.EntityID != "sensor.power" || st.State != "1200" {
		t.Errorf("sensor.power: got %+v", st)
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "42", `"text"`} {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Decode(%q): got %v, want ErrUnknownFormat", in, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "states.json")
	if err := os.WriteFile(path, []byte(`{"sensor.a": {"state": "1"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := snap.Lookup("sensor.a"); !ok {
		t.Error("sensor.a not loaded")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
