package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

const (
	CategoryLocation = "location"
	DefaultSubject   = "user"
	DefaultPredicate = "locatedAt"
	DefaultSite      = "site"

	timestampLayout = "2006-01-02 15:04:05"
)

// LogicalEpoch is the origin of simulated time for every path.
var LogicalEpoch = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// Context is one canonicalized observation. Object carries the "x y"
// estimate, Timestamp the logical time and Owner the per-path sequence
// counter; the remaining fields are labels.
type Context struct {
	Category  string
	Subject   string
	Predicate string
	Object    string
	StartFrom time.Time
	EndAt     time.Time
	Site      string
	Timestamp string
	Owner     int64
}

func (c Context) Coordinate() (orb.Point, error) {
	return ParseObject(c.Object)
}

func (c Context) LogicalTime() (time.Time, error) {
	return ParseTimestamp(c.Timestamp)
}

func (c Context) IsZero() bool {
	return c == Context{}
}

func FormatObject(p orb.Point) string {
	return strconv.FormatFloat(p.X(), 'f', -1, 64) + " " + strconv.FormatFloat(p.Y(), 'f', -1, 64)
}

func ParseObject(raw string) (orb.Point, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return orb.Point{}, fmt.Errorf("%w: object %q: want 2 fields, got %d", ErrParse, raw, len(fields))
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: object %q: %v", ErrParse, raw, err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: object %q: %v", ErrParse, raw, err)
	}

	return orb.Point{x, y}, nil
}

// FormatTimestamp renders t as yyyy-MM-dd HH:mm:ss:SSS, truncated to the millisecond.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s:%03d", t.Format(timestampLayout), t.Nanosecond()/int(time.Millisecond))
}

func ParseTimestamp(raw string) (time.Time, error) {
	cut := strings.LastIndexByte(raw, ':')
	if cut < 0 || len(raw)-cut-1 != 3 {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrParse, raw)
	}

	base, err := time.ParseInLocation(timestampLayout, raw[:cut], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrParse, raw, err)
	}
	millis, err := strconv.Atoi(raw[cut+1:])
	if err != nil || millis < 0 {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: bad milliseconds", ErrParse, raw)
	}

	return base.Add(time.Duration(millis) * time.Millisecond), nil
}

type ContextFactory struct {
	Subject   string
	Predicate string
	Site      string
	now       func() time.Time
}

func NewContextFactory(now func() time.Time) ContextFactory {
	if now == nil {
		now = time.Now
	}

	return ContextFactory{
		Subject:   DefaultSubject,
		Predicate: DefaultPredicate,
		Site:      DefaultSite,
		now:       now,
	}
}

// New stamps one observation. elapsed is the logical time since LogicalEpoch.
func (f ContextFactory) New(seq int64, elapsed time.Duration, estimate orb.Point) Context {
	wall := f.now()

	return Context{
		Category:  CategoryLocation,
		Subject:   f.Subject,
		Predicate: f.Predicate,
		Object:    FormatObject(estimate),
		StartFrom: wall,
		EndAt:     wall,
		Site:      f.Site,
		Timestamp: FormatTimestamp(LogicalEpoch.Add(elapsed)),
		Owner:     seq,
	}
}
