package pagination

import (
	"encoding/base64"
	"strings"
	"testing"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 10, 100, 1000, 1<<31 - 1} {
		cursor := EncodeCursor(offset)
		decoded, err := DecodeCursor(cursor)
		if err != nil {
			t.Fatalf("DecodeCursor(EncodeCursor(%d)) returned error: %v", offset, err)
		}
		if decoded != offset {
			t.Errorf("Round trip failed: encoded %d, decoded %d", offset, decoded)
		}
	}
}

func TestEncodeProducesURLSafeString(t *testing.T) {
	cursor := EncodeCursor(42)
	if cursor == "" {
		t.Fatal("Expected non-empty cursor")
	}
	for _, c := range []string{"+", "/", " ", "\n"} {
		if strings.Contains(cursor, c) {
			t.Errorf("Cursor contains URL-unsafe character %q: %s", c, cursor)
		}
	}
}

func TestDecodeToleratesMissingPadding(t *testing.T) {
	cursor := strings.TrimRight(EncodeCursor(7), "=")
	decoded, err := DecodeCursor(cursor)
	if err != nil {
		t.Fatalf("DecodeCursor rejected unpadded cursor: %v", err)
	}
	if decoded != 7 {
		t.Errorf("Expected 7, got %d", decoded)
	}
}

func TestDecodeMalformedEncoding(t *testing.T) {
	_, err := DecodeCursor("not-a-valid-cursor!!!")
	if !mcperrors.IsInvalidCursor(err) {
		t.Fatalf("Expected InvalidCursor error, got %v", err)
	}
	if !strings.Contains(err.Error(), "malformed encoding") {
		t.Errorf("Expected 'malformed encoding' detail, got %q", err.Error())
	}
}

func TestDecodeMalformedStructure(t *testing.T) {
	cursor := base64.URLEncoding.EncodeToString([]byte("this is not json"))
	_, err := DecodeCursor(cursor)
	if !mcperrors.IsInvalidCursor(err) {
		t.Fatalf("Expected InvalidCursor error, got %v", err)
	}
	if !strings.Contains(err.Error(), "malformed structure") {
		t.Errorf("Expected 'malformed structure' detail, got %q", err.Error())
	}
}

func TestDecodeMissingOffsetField(t *testing.T) {
	cursor := base64.URLEncoding.EncodeToString([]byte(`{"wrong":"field"}`))
	_, err := DecodeCursor(cursor)
	if !mcperrors.IsInvalidCursor(err) {
		t.Fatalf("Expected InvalidCursor error, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing offset field") {
		t.Errorf("Expected 'missing offset field' detail, got %q", err.Error())
	}
}

func TestDecodeNegativeOffset(t *testing.T) {
	cursor := base64.URLEncoding.EncodeToString([]byte(`{"offset":-5}`))
	_, err := DecodeCursor(cursor)
	if !mcperrors.IsInvalidCursor(err) {
		t.Fatalf("Expected InvalidCursor error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid offset value") {
		t.Errorf("Expected 'invalid offset value' detail, got %q", err.Error())
	}
}

func TestDecodeNonIntegerOffset(t *testing.T) {
	for _, payload := range []string{`{"offset":"ten"}`, `{"offset":1.5}`, `{"offset":null}`} {
		cursor := base64.URLEncoding.EncodeToString([]byte(payload))
		_, err := DecodeCursor(cursor)
		if !mcperrors.IsInvalidCursor(err) {
			t.Fatalf("Expected InvalidCursor for %s, got %v", payload, err)
		}
		if !strings.Contains(err.Error(), "invalid offset value") {
			t.Errorf("Expected 'invalid offset value' for %s, got %q", payload, err.Error())
		}
	}
}
