// Package imagecodec isolates the rest of the service from the history of
// the images column. The catalog went through several incompatible on-disk
// encodings (single URL, JSON URL array, JSON base64 array, raw base64);
// Decode normalizes any of them into one canonical ordered list and Encode
// always writes the current generation (a JSON list of strings).
package imagecodec

import (
	"encoding/base64"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultMIMEPrefix is applied to bare base64 blobs that carry no data-URI
// header, so the frontend can always render list elements directly.
const DefaultMIMEPrefix = "data:image/jpeg;base64,"

// Decode converts a stored images value into the canonical ordered list.
// It never fails: malformed JSON degrades to a single-element list holding
// the raw string, and an empty value decodes to an empty (non-nil) list.
func Decode(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.UnmarshalFromString(raw, &list); err == nil {
			return normalize(list)
		}
		// fall through: treat the whole string as one reference
	}
	return normalize([]string{raw})
}

// Normalize accepts the heterogeneous shapes callers may already hold (a
// decoded list passes through, a string goes through Decode) and returns
// the canonical list.
func Normalize(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return normalize(t)
	case string:
		return Decode(t)
	default:
		return []string{}
	}
}

// Encode serializes the canonical list into the current storage form, a
// JSON list of strings, preserving order even for a single image.
func Encode(list []string) string {
	if list == nil {
		list = []string{}
	}
	out, err := json.MarshalToString(list)
	if err != nil {
		// []string cannot fail to marshal; keep the column well-formed anyway
		return "[]"
	}
	return out
}

func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, normalizeElement(item))
	}
	return out
}

// normalizeElement prefixes bare base64 blobs with the default image MIME
// type. URLs, data-URIs and filenames pass through untouched.
func normalizeElement(s string) string {
	if strings.HasPrefix(s, "data:") {
		return s
	}
	if isBase64Blob(s) {
		return DefaultMIMEPrefix + s
	}
	return s
}

// isBase64Blob reports whether s looks like raw base64 image data rather
// than a URL or filename. `/` is part of the base64 alphabet and common in
// encoded binary data, so only extension dots, scheme colons and spaces
// rule a string out before attempting a decode of the leading chunk.
func isBase64Blob(s string) bool {
	if len(s) < 64 {
		return false
	}
	if strings.ContainsAny(s, ".:\\ ") {
		return false
	}
	probe := s
	if len(probe) > 64 {
		probe = probe[:64]
	}
	_, err := base64.StdEncoding.DecodeString(probe)
	return err == nil
}
