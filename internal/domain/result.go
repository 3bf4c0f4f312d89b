package domain

import "time"

type Stage string

const (
	StageStart   Stage = "start"
	StageSuccess Stage = "success"
	StageFailure Stage = "failure"
)

// StatusEvent is a human readable progress message.
type StatusEvent struct {
	Stage   Stage
	Message string
}

type FolderResult struct {
	Folders []string
	Events  []StatusEvent
}

type PhotoResult struct {
	Photos   []Photo
	Day      time.Time
	Events   []StatusEvent
	Warnings []string
}

// Count is the number of matching photos, for callers that only need a
// badge or notification text.
func (r PhotoResult) Count() int {
	return len(r.Photos)
}

func (r PhotoResult) URLs() []string {
	urls := make([]string, 0, len(r.Photos))
	for _, p := range r.Photos {
		urls = append(urls, p.URL)
	}
	return urls
}

// MonthDayLayout formats the year-independent token used for matching.
const MonthDayLayout = "01-02"

func MonthDay(t time.Time) string {
	return t.Format(MonthDayLayout)
}
