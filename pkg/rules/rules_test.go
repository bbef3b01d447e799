package rules

import (
	"strings"
	"testing"

	"github.com/goliatone/go-recordconv/pkg/record"
)

func validate(v record.FieldValidator, field string, value any) string {
	return v(record.ValidateRequest{Field: field, Value: value})
}

func prepare(p record.Preparer, value any) any {
	return p(record.PrepareRequest{Value: value})
}

func TestNonEmpty(t *testing.T) {
	t.Parallel()

	v := NonEmpty()
	if msg := validate(v, "title", "hello"); msg != "" {
		t.Fatalf("unexpected rejection: %q", msg)
	}
	for _, value := range []any{"", "   ", nil} {
		if msg := validate(v, "title", value); msg == "" {
			t.Fatalf("expected rejection for %v", value)
		}
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	v := MaxLength(3)
	if msg := validate(v, "code", "abc"); msg != "" {
		t.Fatalf("unexpected rejection: %q", msg)
	}
	if msg := validate(v, "code", "abcd"); msg == "" {
		t.Fatal("expected rejection for long value")
	}
	// Rune count, not byte count.
	if msg := validate(v, "code", "äöü"); msg != "" {
		t.Fatalf("multibyte string wrongly rejected: %q", msg)
	}
}

func TestUUID(t *testing.T) {
	t.Parallel()

	v := UUID()
	if msg := validate(v, "id", "b9df7b67-7bc5-4a82-91c5-d8b5d303aad9"); msg != "" {
		t.Fatalf("valid UUID rejected: %q", msg)
	}
	if msg := validate(v, "id", "not-a-uuid"); msg == "" {
		t.Fatal("expected rejection")
	}
	if msg := validate(v, "id", ""); msg != "" {
		t.Fatalf("empty value should pass: %q", msg)
	}
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	v := OneOf("draft", "published")
	if msg := validate(v, "state", "draft"); msg != "" {
		t.Fatalf("allowed value rejected: %q", msg)
	}
	msg := validate(v, "state", "deleted")
	if msg == "" {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(msg, "draft, published") {
		t.Fatalf("message should list allowed values: %q", msg)
	}
}

func TestPreparers(t *testing.T) {
	t.Parallel()

	if got := prepare(TrimSpace(), "  x  "); got != "x" {
		t.Fatalf("TrimSpace: %v", got)
	}
	if got := prepare(Lowercase(), "ABC"); got != "abc" {
		t.Fatalf("Lowercase: %v", got)
	}
	// Non-strings pass through untouched.
	if got := prepare(TrimSpace(), 5); got != 5 {
		t.Fatalf("non-string mutated: %v", got)
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	p := SanitizeHTML()
	got, _ := prepare(p, `<p>hi</p><script>alert(1)</script>`).(string)
	if strings.Contains(got, "script") {
		t.Fatalf("script tag survived: %q", got)
	}
	if !strings.Contains(got, "<p>hi</p>") {
		t.Fatalf("safe markup stripped: %q", got)
	}
}
