// Package frtime parses the French date and clock-time forms users type
// into commands, and formats dates back in French. Errors are user-facing
// French messages, not developer diagnostics.
package frtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

var weekdays = map[string]time.Weekday{
	"lun": time.Monday, "lundi": time.Monday,
	"mar": time.Tuesday, "mardi": time.Tuesday,
	"mer": time.Wednesday, "mercredi": time.Wednesday,
	"jeu": time.Thursday, "jeudi": time.Thursday,
	"ven": time.Friday, "vendredi": time.Friday,
	"sam": time.Saturday, "samedi": time.Saturday,
	"dim": time.Sunday, "dimanche": time.Sunday,
}

// months normalizes the abbreviations and unaccented spellings people
// actually type into the full names monday knows.
var months = map[string]string{
	"janv": "janvier", "janvier": "janvier",
	"févr": "février", "fevr": "février", "fevrier": "février", "février": "février",
	"mars": "mars",
	"avr": "avril", "avril": "avril",
	"mai": "mai",
	"juin": "juin",
	"juil": "juillet", "juillet": "juillet",
	"août": "août", "aout": "août",
	"sept": "septembre", "septembre": "septembre",
	"oct": "octobre", "octobre": "octobre",
	"nov": "novembre", "novembre": "novembre",
	"déc": "décembre", "dec": "décembre", "decembre": "décembre",
}

var (
	numericDate = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})(?:[/.](\d{2,4}))?$`)
	namedDate   = regexp.MustCompile(`^(\d{1,2})\s+(\S+)(?:\s+(\d{4}))?$`)
	clockTime   = regexp.MustCompile(`^(\d{1,2})\s*(?:h|:|heures?)(?:\s*(\d{1,2})\s*(?:min(?:utes?)?|m)?)?(?:\s*:?\s*(\d{1,2})\s*(?:sec(?:ondes?)?|s)?)?$`)
)

// ParseDate reads a departure day: a French weekday name (the nearest such
// day not before today), a numeric day/month[/year], or a day with a French
// month name. A missing year means the current one. The returned time is
// midnight local.
func ParseDate(value string, now time.Time) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(value))

	if wd, ok := weekdays[v]; ok {
		ahead := (int(wd) - int(now.Weekday()) + 7) % 7
		return time.Date(now.Year(), now.Month(), now.Day()+ahead, 0, 0, 0, 0, now.Location()), nil
	}

	if m := numericDate.FindStringSubmatch(v); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		return makeDate(value, year, time.Month(month), day, now.Location())
	}

	if m := namedDate.FindStringSubmatch(v); m != nil {
		month, ok := months[m[2]]
		if ok {
			year := strconv.Itoa(now.Year())
			if m[3] != "" {
				year = m[3]
			}
			t, err := monday.ParseInLocation("2 January 2006", m[1]+" "+month+" "+year, now.Location(), monday.LocaleFrFR)
			if err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("Impossible de convertir %s en jour", value)
}

func makeDate(value string, year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// time.Date normalizes out-of-range components; a changed day or month
	// means the input named a date that does not exist.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("Impossible de convertir %s en jour", value)
	}
	return t, nil
}

// ParseTime reads a departure hour (18h30, 18h, 8 heures 30, 18:30) as an
// offset from midnight.
func ParseTime(value string) (time.Duration, error) {
	v := strings.ToLower(strings.TrimSpace(value))

	m := clockTime.FindStringSubmatch(v)
	if m == nil {
		return 0, fmt.Errorf("Impossible de convertir %s en heure", value)
	}

	hour, _ := strconv.Atoi(m[1])
	min, sec := 0, 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if hour > 23 || min > 59 || sec > 59 {
		return 0, fmt.Errorf("Impossible de convertir %s en heure", value)
	}

	return time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatDate renders a date the way the changelog shows it: "2 janv. 2006".
func FormatDate(t time.Time) string {
	return monday.Format(t, "2 Jan 2006", monday.LocaleFrFR)
}

// FormatTime renders a clock time as "18h30m".
func FormatTime(t time.Time) string {
	return t.Format("15h04") + "m"
}
