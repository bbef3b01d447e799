package form

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordconv/pkg/record"
)

func eventType() *record.Type {
	return &record.Type{
		Name: "Event",
		Fields: []record.Field{
			{Name: "title", Kind: record.KindString},
			{Name: "count", Kind: record.KindInteger, Optional: true},
			{Name: "ratio", Kind: record.KindFloat, Optional: true},
			{Name: "active", Kind: record.KindBoolean, Optional: true},
			{Name: "day", Kind: record.KindDate, Optional: true},
			{Name: "when", Kind: record.KindDateTime, Optional: true},
			{Name: "attrs", Kind: record.KindMapping, Optional: true},
			{Name: "tags", Kind: record.KindList, Optional: true, ItemKind: record.KindString},
		},
	}
}

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	t.Parallel()

	schema, err := Build(eventType(), Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	when := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	app := map[string]any{
		"title":  "launch",
		"count":  3,
		"ratio":  0.5,
		"active": true,
		"day":    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"when":   when,
		"attrs":  map[string]any{"color": "red"},
		"tags":   []any{"a", "b"},
	}

	wire, err := schema.Serialize(app)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}

	wantWire := map[string]any{
		"title":  "launch",
		"count":  "3",
		"ratio":  "0.5",
		"active": "true",
		"day":    "2024-03-15",
		"when":   "2024-03-15T10:30:00Z",
		"attrs":  map[string]any{"color": "red"},
		"tags":   []any{"a", "b"},
	}
	if diff := cmp.Diff(wantWire, wire); diff != "" {
		t.Fatalf("unexpected wire form (-want +got):\n%s", diff)
	}

	back, err := schema.Deserialize(wire)
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}

	if back["count"] != 3 || back["ratio"] != 0.5 || back["active"] != true {
		t.Fatalf("scalar round trip mismatch: %+v", back)
	}
	if got := back["when"].(time.Time); !got.Equal(when) {
		t.Fatalf("datetime round trip mismatch: %v", got)
	}
}

func TestDeserialize_RequiredMissing(t *testing.T) {
	t.Parallel()

	schema, err := Build(eventType(), Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	_, err = schema.Deserialize(map[string]any{})
	var invalid *Invalid
	if !errors.As(err, &invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
	if invalid.Node != "title" || invalid.Message != "required" {
		t.Fatalf("unexpected rejection: %+v", invalid)
	}
}

func TestDeserialize_MissingFallsBackToDefault(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Doc",
		Fields: []record.Field{
			{Name: "status", Kind: record.KindString, Optional: true, Default: "draft"},
		},
	}
	schema, err := Build(typ, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	out, err := schema.Deserialize(map[string]any{})
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if out["status"] != "draft" {
		t.Fatalf("expected default fallback, got %v", out["status"])
	}
}

func TestDeserialize_ValidatorsAndPreparers(t *testing.T) {
	t.Parallel()

	var upper record.Preparer = func(req record.PrepareRequest) any {
		if s, ok := req.Value.(string); ok {
			return strings.ToUpper(s)
		}
		return req.Value
	}
	var noBang record.FieldValidator = func(req record.ValidateRequest) string {
		if s, ok := req.Value.(string); ok && strings.Contains(s, "!") {
			return "must not contain exclamation marks"
		}
		return ""
	}

	typ := &record.Type{
		Name: "Doc",
		Fields: []record.Field{
			{Name: "code", Kind: record.KindString, Metadata: map[string]any{
				record.MetaPreparers:  []record.Preparer{upper},
				record.MetaValidators: []record.FieldValidator{noBang},
			}},
		},
	}
	schema, err := Build(typ, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	out, err := schema.Deserialize(map[string]any{"code": "abc"})
	if err != nil {
		t.Fatalf("Deserialize returned error: %v", err)
	}
	if out["code"] != "ABC" {
		t.Fatalf("preparer did not run before storage: %v", out["code"])
	}

	_, err = schema.Deserialize(map[string]any{"code": "no!"})
	var invalid *Invalid
	if !errors.As(err, &invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
	if invalid.Node != "code" {
		t.Fatalf("unexpected rejection node: %+v", invalid)
	}
}

func TestValidate_TypeValidators(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Range",
		Fields: []record.Field{
			{Name: "low", Kind: record.KindInteger},
			{Name: "high", Kind: record.KindInteger},
		},
		Validators: []record.TypeValidator{
			{
				Validate: func(req record.TypeValidateRequest) *record.Issue {
					low, _ := req.Data["low"].(int)
					high, _ := req.Data["high"].(int)
					if low > high {
						return &record.Issue{Field: "low", Message: "low exceeds high"}
					}
					return nil
				},
			},
		},
	}

	schema, err := Build(typ, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if err := schema.Validate(map[string]any{"low": 1, "high": 2}); err != nil {
		t.Fatalf("valid data rejected: %v", err)
	}

	err = schema.Validate(map[string]any{"low": 3, "high": 2})
	var invalid *Invalid
	if !errors.As(err, &invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
	if invalid.Node != "low" {
		t.Fatalf("unexpected rejection: %+v", invalid)
	}
}

func TestValidate_RequiredBinds(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name:   "Doc",
		Fields: []record.Field{{Name: "name", Kind: record.KindString}},
		Validators: []record.TypeValidator{
			{
				RequiredBinds: []string{"request"},
				Validate: func(req record.TypeValidateRequest) *record.Issue {
					return nil
				},
			},
		},
	}

	schema, err := Build(typ, Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	err = schema.Validate(map[string]any{"name": "x"})
	var missing *MissingBindError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingBindError, got %v", err)
	}
	if missing.Bind != "request" {
		t.Fatalf("unexpected bind name %q", missing.Bind)
	}

	bound, err := Build(typ, Options{Bindings: map[string]any{"request": struct{}{}}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := bound.Validate(map[string]any{"name": "x"}); err != nil {
		t.Fatalf("bound validator should pass: %v", err)
	}
}

func TestValidate_SkipTypeValidators(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name:   "Doc",
		Fields: []record.Field{{Name: "name", Kind: record.KindString}},
		Validators: []record.TypeValidator{
			{
				Validate: func(req record.TypeValidateRequest) *record.Issue {
					return &record.Issue{Message: "always fails"}
				},
			},
		},
	}

	schema, err := Build(typ, Options{SkipTypeValidators: true})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := schema.Validate(map[string]any{"name": "x"}); err != nil {
		t.Fatalf("skipped validators still ran: %v", err)
	}
}

func TestReplaceNull(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"a": Null,
		"b": map[string]any{"c": Null, "d": 1},
		"e": []any{Null, "x"},
	}
	got := ReplaceNull(in, nil)
	want := map[string]any{
		"a": nil,
		"b": map[string]any{"c": nil, "d": 1},
		"e": []any{nil, "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}
