package formes

import (
	"testing"
	"time"

	"github.com/goliatone/go-recordconv/pkg/form"
	"github.com/goliatone/go-recordconv/pkg/record"
)

func TestDateTime_UTCStrings(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	typ := &record.Type{
		Name: "Doc",
		Fields: []record.Field{
			{Name: "when", Kind: record.KindDateTime, Optional: true},
			{Name: "day", Kind: record.KindDate, Optional: true},
		},
	}
	schema, err := Build(typ, form.Options{Location: loc})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// 18:30 in Kuala Lumpur is 10:30 UTC.
	when := time.Date(2024, 3, 15, 18, 30, 0, 0, loc)
	wire, err := schema.Serialize(map[string]any{
		"when": when,
		"day":  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if wire["when"] != "2024-03-15T10:30:00Z" {
		t.Fatalf("datetime should serialize in UTC, got %v", wire["when"])
	}
	if wire["day"] != "2024-03-15" {
		t.Fatalf("unexpected date wire form: %v", wire["day"])
	}

	out, err := schema.Deserialize(map[string]any{"when": "2024-03-15T10:30:00Z"})
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	got := out["when"].(time.Time)
	if !got.Equal(when) {
		t.Fatalf("instant changed across round trip: %v vs %v", got, when)
	}
	if got.Location() != loc {
		t.Fatalf("expected value in %v, got %v", loc, got.Location())
	}
}

func TestSerialize_NilDatesAreNull(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name:   "Doc",
		Fields: []record.Field{{Name: "day", Kind: record.KindDate, Optional: true}},
	}
	schema, err := Build(typ, form.Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	wire, err := schema.Serialize(map[string]any{})
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if wire["day"] != nil {
		t.Fatalf("absent date should serialize to null, got %v", wire["day"])
	}
}
