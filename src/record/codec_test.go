package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fields := []string{"<@123>", "<t:1700000000>", "Lyon", "Paris", "5km", "2h", "3", "<@1>;<@2>"}
	line := Encode(fields...)

	decoded, err := Decode(line, len(fields))
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)
}

func TestEncodeStripsDelimiterFromFields(t *testing.T) {
	line := Encode("a" + Delimiter + "b", "c")
	decoded, err := Decode(line, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "c"}, decoded)
}

func TestStripDelimiterFixedPoint(t *testing.T) {
	// Removal can splice the pieces of an interleaved delimiter back
	// together; the result must still end up clean.
	cases := []string{
		Delimiter,
		Delimiter + Delimiter + Delimiter,
		`\` + Delimiter + `\!`,
		"plain text",
		"",
	}
	for _, in := range cases {
		out := StripDelimiter(in)
		assert.NotContains(t, out, Delimiter, "input %q", in)
		assert.Equal(t, out, StripDelimiter(out), "stripping must be idempotent for %q", in)
	}
}

func TestDecodeArityMismatch(t *testing.T) {
	_, err := Decode(Encode("a", "b"), 3)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(Encode("a", "b", "c", "d"), 3)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestListRoundTrip(t *testing.T) {
	items := []string{"<@1>", "<@2>", "<@3>"}
	assert.Equal(t, items, DecodeList(EncodeList(items)))
}

func TestEmptyListEncodesEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeList(nil))
	assert.Nil(t, DecodeList(""))
	assert.Equal(t, []string{"a"}, DecodeList(";a;"))
}
