package championshipdomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	ErrInvalidDate  = apperrors.Validation("could not understand the championship date")
	ErrDateInPast   = apperrors.Validation("championship date must not be in the past")
	ErrUnknownZone  = apperrors.Validation("unknown timezone")
	ErrDateRequired = apperrors.Validation("championship date is required")
)

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// DateParser turns organizer input into a championship date.
type DateParser struct {
	TimezoneMap map[string]string
	parser      *when.Parser
}

// NewDateParser creates a DateParser with common timezone abbreviations.
func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &DateParser{
		TimezoneMap: map[string]string{
			"UTC":  "UTC",
			"BRT":  "America/Sao_Paulo",
			"CET":  "Europe/Berlin",
			"CEST": "Europe/Berlin",
			"PST":  "America/Los_Angeles",
			"PDT":  "America/Los_Angeles",
			"MST":  "America/Denver",
			"MDT":  "America/Denver",
			"CST":  "America/Chicago",
			"CDT":  "America/Chicago",
			"EST":  "America/New_York",
			"EDT":  "America/New_York",
		},
		parser: w,
	}
}

// Location resolves an abbreviation or IANA name. Empty input yields UTC.
func (p *DateParser) Location(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC, nil
	}
	if name, ok := p.TimezoneMap[strings.ToUpper(tz)]; ok {
		tz = name
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, tz)
	}
	return loc, nil
}

// Parse accepts RFC 3339, a bare YYYY-MM-DD date or natural language such as
// "next saturday 10am". Dates before today in loc are rejected.
func (p *DateParser) Parse(input, tz string, clock Clock) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrDateRequired
	}

	loc, err := p.Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	now := clock.Now().In(loc)

	parsed, err := p.parse(input, loc, now)
	if err != nil {
		return time.Time{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if parsed.In(loc).Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return parsed.UTC(), nil
}

func (p *DateParser) parse(input string, loc *time.Location, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t, nil
	}

	r, err := p.parser.Parse(strings.ToLower(input), now)
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	return r.Time.In(loc), nil
}
