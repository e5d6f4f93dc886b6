package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// bindParams decodes named params into dst. Missing or null params leave
// dst untouched.
func bindParams(params json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return InvalidParams("invalid parameters: %v", err)
	}
	return nil
}

// pageParam renders an optional page number the way the query string
// carries it, so the paginator applies the same clamping
func pageParam(page *int) string {
	if page == nil {
		return ""
	}
	return strconv.Itoa(*page)
}
