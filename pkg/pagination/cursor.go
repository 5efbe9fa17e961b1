package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
)

// cursorPayload is the structured record serialized into a cursor token.
// The wire format is an implementation detail: only same-version round-trip
// compatibility is guaranteed.
type cursorPayload struct {
	Offset int `json:"offset"`
}

// EncodeCursor encodes an offset into an opaque, URL-safe cursor string.
// Encoding always succeeds for a non-negative offset; the function is pure.
func EncodeCursor(offset int) string {
	data, err := json.Marshal(cursorPayload{Offset: offset})
	if err != nil {
		// A struct of one int cannot fail to marshal
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor decodes an opaque cursor string back to its offset.
//
// Validation happens in order: the token must be valid base64url (padded or
// not), the decoded bytes must be a JSON object, the object must contain an
// "offset" field, and that field must be a non-negative integer. Every failure
// surfaces as an InvalidCursor error with a distinguishing reason; the caller
// must discard the cursor and restart pagination from the beginning.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(cursor, "="))
	if err != nil {
		return 0, mcperrors.InvalidCursor(cursor, "malformed encoding").WithDetail(err.Error())
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, mcperrors.InvalidCursor(cursor, "malformed structure").WithDetail(err.Error())
	}

	rawOffset, ok := payload["offset"]
	if !ok {
		return 0, mcperrors.InvalidCursor(cursor, "missing offset field")
	}

	var offset int
	if err := json.Unmarshal(rawOffset, &offset); err != nil {
		return 0, mcperrors.InvalidCursor(cursor, "invalid offset value").WithDetail(err.Error())
	}
	if offset < 0 {
		return 0, mcperrors.InvalidCursor(cursor, "invalid offset value")
	}

	return offset, nil
}
