// Package datetime turns loosely typed spreadsheet date cells into absolute
// timestamps.
package datetime

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"
)

const (
	// unixEpochSerial is the spreadsheet day serial of 1970-01-01.
	unixEpochSerial = 25569
	msPerDay        = 86400 * 1000
	// maxUnixMilli bounds serial conversion to years representable by
	// time.UnixMilli without overflow (9999-12-31T23:59:59.999Z).
	maxUnixMilli = 253402300799999
)

var layouts = []string{
	time.RFC3339,
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006.1.2 15:04",
	"2006.1.2",
	"2006年1月2日 15:04:05",
	"2006年1月2日 15:04",
	"2006年1月2日",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Normalizer converts cell values to timestamps. It never fails: values it
// cannot interpret resolve to the current time and are logged.
type Normalizer struct {
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewNormalizer builds a normalizer that reads wall-clock strings in loc.
func NewNormalizer(loc *time.Location, logger *zap.Logger) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{loc: loc, now: time.Now, logger: logger}
}

// WithClock overrides the fallback clock.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	clone := *n
	clone.now = now
	return &clone
}

// Location returns the zone used for wall-clock strings.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize maps value to a timestamp. Accepted shapes: time.Time, numeric
// day serials, "<date> / <start>~<end>" ranges and free-form date strings.
func (n *Normalizer) Normalize(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		if t, ok := n.fromString(v); ok {
			return t
		}
	default:
		if serial, ok := toFloat(value); ok {
			if t, ok := FromSerial(serial); ok {
				return t
			}
		}
	}
	return n.fallback(value)
}

// FromSerial converts a spreadsheet day serial into UTC. No zone shift is
// applied. Non-finite or out of range serials report false.
func FromSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, false
	}
	ms := math.Round((serial - unixEpochSerial) * msPerDay)
	if ms > maxUnixMilli || ms < -maxUnixMilli {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

func (n *Normalizer) fromString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "/") && strings.Contains(s, "~") {
		if t, ok := n.fromRange(s); ok {
			return t, true
		}
	}
	return n.parse(s)
}

// fromRange keeps the date and the range start of "<date> / <start>~<end>".
func (n *Normalizer) fromRange(s string) (time.Time, bool) {
	head, _, _ := strings.Cut(s, "~")
	idx := strings.LastIndex(head, "/")
	if idx < 0 {
		return time.Time{}, false
	}
	datePart := strings.TrimSpace(head[:idx])
	startPart := strings.TrimSpace(head[idx+1:])
	if datePart == "" || !strings.Contains(startPart, ":") {
		return time.Time{}, false
	}
	return n.parse(datePart + " " + startPart)
}

func (n *Normalizer) parse(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}
	return n.parseAny(s)
}

func (n *Normalizer) parseAny(s string) (t time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("date parser panicked", zap.String("value", s), zap.Any("panic", r))
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, n.loc)
	if err != nil || parsed.IsZero() {
		return time.Time{}, false
	}
	return parsed, true
}

func (n *Normalizer) fallback(value any) time.Time {
	now := n.now()
	n.logger.Warn("unparseable date value, using current time",
		zap.Any("value", value),
		zap.Time("substituted", now),
	)
	return now
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
