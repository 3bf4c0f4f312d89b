package exif

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

const exifLayout = "2006:01:02 15:04:05"

// Reader extracts the capture date of a downloaded photo.
type Reader struct {
	// Location interprets the zone-less EXIF timestamps; nil means local.
	Location *time.Location
}

func (r Reader) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	return r.TakenAt(file)
}

// TakenAt prefers DateTimeOriginal, then DateTimeDigitized, then the
// generic DateTime tag.
func (r Reader) TakenAt(src io.Reader) (time.Time, error) {
	x, err := goexif.Decode(src)
	if err != nil {
		return time.Time{}, err
	}

	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	for _, field := range []goexif.FieldName{goexif.DateTimeOriginal, goexif.DateTimeDigitized} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		str, err := tag.StringVal()
		if err != nil {
			continue
		}
		if parsed, err := time.ParseInLocation(exifLayout, str, loc); err == nil {
			return parsed, nil
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed.In(loc), nil
	}
	return time.Time{}, errors.New("exif datetime not found")
}
