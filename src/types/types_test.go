package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionRoundTrip(t *testing.T) {
	m := Mention(184405311681986560)
	assert.Equal(t, "<@184405311681986560>", m.String())

	parsed, err := ParseMention(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestParseMentionRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "184405311681986560", "<@>", "<@abc>", "<#123>", "<@123", "@123>"} {
		_, err := ParseMention(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestChannelRoundTrip(t *testing.T) {
	c := Channel(1220434775312171110)
	assert.Equal(t, "<#1220434775312171110>", c.String())

	parsed, err := ParseChannel(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseChannel("<@1220434775312171110>")
	assert.Error(t, err)
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Now()
	ts := At(now)
	assert.Equal(t, now.Unix(), int64(ts))

	parsed, err := ParseTimestamp(ts.String())
	require.NoError(t, err)
	assert.Equal(t, ts, parsed)
	assert.Equal(t, now.Unix(), parsed.Time().Unix())
}

func TestParseTimestampIgnoresStyleSuffix(t *testing.T) {
	parsed, err := ParseTimestamp("<t:1700000000:R>")
	require.NoError(t, err)
	assert.Equal(t, Timestamp(1700000000), parsed)
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "1700000000", "<t:>", "<t:abc>", "<t:17", "t:17>"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestTimestampOrdering(t *testing.T) {
	early := Timestamp(100)
	late := Timestamp(200)
	assert.True(t, early < late)
	assert.True(t, late.Time().After(early.Time()))
}
