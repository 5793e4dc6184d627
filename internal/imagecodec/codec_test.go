package imagecodec

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmpty(t *testing.T) {
	assert.Equal(t, []string{}, Decode(""))
	assert.Equal(t, []string{}, Decode("  "))
	assert.Equal(t, []string{}, Decode("null"))
}

func TestDecodeJSONList(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, Decode(`["a.jpg","b.jpg"]`))
}

func TestDecodeSingleURL(t *testing.T) {
	assert.Equal(t, []string{"a.jpg"}, Decode("a.jpg"))
	assert.Equal(t,
		[]string{"https://cdn.example.com/p/1.webp"},
		Decode("https://cdn.example.com/p/1.webp"))
}

func TestDecodeMalformedJSON(t *testing.T) {
	// malformed JSON never raises; it degrades to a single-element list
	assert.Equal(t, []string{"<malformed["}, Decode("<malformed["))
	assert.Equal(t, []string{`["a.jpg",`}, Decode(`["a.jpg",`))
}

func TestDecodeBareBase64GetsDataURI(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("jewelry pixels", 16)))
	got := Decode(blob)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], DefaultMIMEPrefix))
	assert.Equal(t, DefaultMIMEPrefix+blob, got[0])

	// inside a JSON array too
	got = Decode(Encode([]string{blob}))
	require.Len(t, got, 1)
	assert.Equal(t, DefaultMIMEPrefix+blob, got[0])
}

func TestDecodeBase64OfBinaryDataGetsDataURI(t *testing.T) {
	// encoded binary image bytes routinely contain `/` (value 63 of the
	// base64 alphabet); detection must not mistake them for paths
	blob := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xFF}, 512))
	require.True(t, strings.Contains(blob, "/"))
	assert.Equal(t, []string{DefaultMIMEPrefix + blob}, Decode(blob))
	assert.Equal(t, []string{DefaultMIMEPrefix + blob}, Decode(Encode([]string{blob})))
}

func TestDecodeDataURIPassesThrough(t *testing.T) {
	uri := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg"
	assert.Equal(t, []string{uri}, Decode(`["` + uri + `"]`))
}

func TestEncodeAlwaysJSONList(t *testing.T) {
	assert.Equal(t, `["a.jpg"]`, Encode([]string{"a.jpg"}))
	assert.Equal(t, `["a.jpg","b.jpg"]`, Encode([]string{"a.jpg", "b.jpg"}))
	assert.Equal(t, `[]`, Encode(nil))
	assert.Equal(t, `[]`, Encode([]string{}))
}

// For every historical encoding, decode -> encode -> decode is stable
// after the first normalization.
func TestRoundTripIdempotence(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("gold ring", 32)))
	inputs := []string{
		"ring.jpg",                              // legacy single URL column
		`["ring.jpg","necklace.jpg"]`,           // JSON URL array
		`["data:image/png;base64,AAAA"]`,        // JSON data-URI array
		blob,                                    // raw base64
		Encode([]string{blob}),                  // JSON base64 array
	}
	for _, in := range inputs {
		first := Decode(in)
		second := Decode(Encode(first))
		assert.Equal(t, first, second, "input %q", in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{}, Normalize(nil))
	assert.Equal(t, []string{"a.jpg"}, Normalize("a.jpg"))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, Normalize([]string{"a.jpg", "b.jpg"}))
}
