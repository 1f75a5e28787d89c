// Package types holds the small value types records are built from: user
// and channel references in Discord mention syntax and epoch timestamps in
// Discord timestamp syntax.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mention is a user reference, rendered as <@id>.
type Mention uint64

// ParseMention reads the canonical <@id> form.
func ParseMention(s string) (Mention, error) {
	inner, ok := strings.CutPrefix(s, "<@")
	if !ok {
		return 0, fmt.Errorf("invalid mention %q", s)
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return 0, fmt.Errorf("invalid mention %q", s)
	}
	id, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mention %q: %w", s, err)
	}
	return Mention(id), nil
}

func (m Mention) String() string {
	return "<@" + strconv.FormatUint(uint64(m), 10) + ">"
}

// Snowflake returns the bare decimal id, the form the REST API takes.
func (m Mention) Snowflake() string {
	return strconv.FormatUint(uint64(m), 10)
}

// Channel is a channel reference, rendered as <#id>.
type Channel uint64

// ParseChannel reads the canonical <#id> form.
func ParseChannel(s string) (Channel, error) {
	inner, ok := strings.CutPrefix(s, "<#")
	if !ok {
		return 0, fmt.Errorf("invalid channel reference %q", s)
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return 0, fmt.Errorf("invalid channel reference %q", s)
	}
	id, err := strconv.ParseUint(inner, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel reference %q: %w", s, err)
	}
	return Channel(id), nil
}

func (c Channel) String() string {
	return "<#" + strconv.FormatUint(uint64(c), 10) + ">"
}

// Snowflake returns the bare decimal id, the form the REST API takes.
func (c Channel) Snowflake() string {
	return strconv.FormatUint(uint64(c), 10)
}

// Timestamp is a point in time in epoch seconds, rendered as <t:epoch>.
// Ordering is the integer ordering.
type Timestamp int64

// At converts a time.Time to a Timestamp, dropping sub-second precision.
func At(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// ParseTimestamp reads the canonical <t:epoch> form. A trailing display
// style (<t:epoch:R>) is tolerated and ignored.
func ParseTimestamp(s string) (Timestamp, error) {
	inner, ok := strings.CutPrefix(s, "<t:")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	if head, _, found := strings.Cut(inner, ":"); found {
		inner = head
	}
	epoch, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp(epoch), nil
}

// Time converts back to a time.Time in the local zone.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t Timestamp) String() string {
	return "<t:" + strconv.FormatInt(int64(t), 10) + ">"
}
