package utils

import "testing"

func TestContactRefRoundTrip(t *testing.T) {
	text := "📧 Kontaktanfrage von Anna: \"Hallo\" " + EncodeContactRef(42)

	id, ok := ParseContactRef(text)
	if !ok {
		t.Fatal("expected a reference")
	}
	if id != 42 {
		t.Errorf("id: got %d want 42", id)
	}
}

func TestParseContactRef(t *testing.T) {
	tests := []struct {
		name string
		text string
		id   int64
		ok   bool
	}{
		{"plain token", "[ID:7]", 7, true},
		{"token mid-text", "before [ID:123] after", 123, true},
		{"no token", "just a normal todo", 0, false},
		{"empty text", "", 0, false},
		{"malformed token", "[ID:]", 0, false},
		{"non-numeric", "[ID:abc]", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseContactRef(tt.text)
			if ok != tt.ok || id != tt.id {
				t.Errorf("got (%d, %v), want (%d, %v)", id, ok, tt.id, tt.ok)
			}
		})
	}
}
