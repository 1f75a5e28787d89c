package frtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ref is a Wednesday.
var ref = time.Date(2026, time.March, 11, 14, 30, 0, 0, time.Local)

func TestParseDateWeekday(t *testing.T) {
	cases := map[string]time.Time{
		"vendredi": time.Date(2026, time.March, 13, 0, 0, 0, 0, time.Local),
		"ven":      time.Date(2026, time.March, 13, 0, 0, 0, 0, time.Local),
		"Lundi":    time.Date(2026, time.March, 16, 0, 0, 0, 0, time.Local),
		"mercredi": time.Date(2026, time.March, 11, 0, 0, 0, 0, time.Local), // today counts
	}
	for in, want := range cases {
		got, err := ParseDate(in, ref)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseDateNumeric(t *testing.T) {
	got, err := ParseDate("25/12", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 25, 0, 0, 0, 0, time.Local), got)

	got, err = ParseDate("1/4/2027", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.April, 1, 0, 0, 0, 0, time.Local), got)

	got, err = ParseDate("01/04/27", ref)
	require.NoError(t, err)
	assert.Equal(t, 2027, got.Year())
}

func TestParseDateFrenchMonth(t *testing.T) {
	for _, in := range []string{"25 décembre", "25 decembre", "25 déc", "25 dec"} {
		got, err := ParseDate(in, ref)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, time.Date(2026, time.December, 25, 0, 0, 0, 0, time.Local), got, "input %q", in)
	}

	got, err := ParseDate("14 juillet 2027", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.July, 14, 0, 0, 0, 0, time.Local), got)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "demain", "32/01", "29/02/2026", "12 froctidor", "12/13"} {
		_, err := ParseDate(in, ref)
		require.Error(t, err, "input %q", in)
		assert.Contains(t, err.Error(), "en jour")
	}
}

func TestParseTime(t *testing.T) {
	cases := map[string]time.Duration{
		"18h30":        18*time.Hour + 30*time.Minute,
		"18h":          18 * time.Hour,
		"18:30":        18*time.Hour + 30*time.Minute,
		"8 heures 30":  8*time.Hour + 30*time.Minute,
		"8 heures":     8 * time.Hour,
		"18h05":        18*time.Hour + 5*time.Minute,
		"9h15min":      9*time.Hour + 15*time.Minute,
		"9h10 minutes": 9*time.Hour + 10*time.Minute,
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "soir", "25h", "18h75", "h30"} {
		_, err := ParseTime(in)
		require.Error(t, err, "input %q", in)
		assert.Contains(t, err.Error(), "en heure")
	}
}

func TestFormatDateIsFrench(t *testing.T) {
	assert.Equal(t, "25 déc. 2026", FormatDate(time.Date(2026, time.December, 25, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "1 janv. 2027", FormatDate(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "18h05m", FormatTime(time.Date(2026, time.March, 11, 18, 5, 0, 0, time.Local)))
}
