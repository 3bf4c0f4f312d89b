package app

import (
	"errors"
	"strings"
	"time"

	"onthisday/internal/domain"
	appErrors "onthisday/internal/errors"
)

// getlastmodified values are RFC 1123 dates; some servers send a numeric zone.
var lastModifiedLayouts = []string{time.RFC1123, time.RFC1123Z}

// DateMatcher decides whether a timestamp falls on today's month and day
// in any year.
type DateMatcher struct {
	Now      func() time.Time
	Location *time.Location
}

func (m DateMatcher) location() *time.Location {
	if m.Location == nil {
		return time.Local
	}
	return m.Location
}

func (m DateMatcher) Today() time.Time {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return now().In(m.location())
}

func (m DateMatcher) Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range lastModifiedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(m.location()), nil
		}
	}
	return time.Time{}, appErrors.Wrap(appErrors.ParseWarning, "parse last-modified", raw, errors.New("not an RFC 1123 date"))
}

// Matches parses raw and compares it with today. Unparseable input never
// matches and yields a ParseWarning.
func (m DateMatcher) Matches(raw string) (bool, error) {
	t, err := m.Parse(raw)
	if err != nil {
		return false, err
	}
	return m.MatchesTime(t), nil
}

func (m DateMatcher) MatchesTime(t time.Time) bool {
	return domain.MonthDay(t.In(m.location())) == domain.MonthDay(m.Today())
}
