package domain

import "time"

type FetchItem struct {
	Photo     Photo
	LocalPath string
	TakenAt   time.Time
	Bytes     int64
}

type FetchReport struct {
	Downloaded []FetchItem
	Skipped    []FetchItem
	Bytes      int64
	Warnings   []string
}
