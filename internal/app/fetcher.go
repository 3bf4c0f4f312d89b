package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"onthisday/internal/config"
	"onthisday/internal/domain"
	appErrors "onthisday/internal/errors"
	"onthisday/internal/logging"
)

// ProgressFunc is called after each photo is handled.
type ProgressFunc func(current, total int, name string)

// Fetcher downloads matched photos into dir/<MM-dd>/<name>.
type Fetcher struct {
	Client     Downloader
	FS         FileSystem
	Exif       ExifReader
	Logger     logging.Logger
	OnProgress ProgressFunc
	Overwrite  bool
}

func (f *Fetcher) Fetch(ctx context.Context, cfg config.ServerConfig, result domain.PhotoResult, dir string) (domain.FetchReport, error) {
	if f.Client == nil || f.FS == nil {
		return domain.FetchReport{}, errors.New("fetcher requires Client and FS")
	}

	stop := f.Logger.Measure("Fetching photos")
	defer stop()

	var report domain.FetchReport
	if len(result.Photos) == 0 {
		return report, nil
	}

	dayDir := filepath.Join(dir, domain.MonthDay(result.Day))
	if err := f.FS.MkdirAll(dayDir, 0o755); err != nil {
		return report, appErrors.Wrap(appErrors.IOFailure, "mkdir", dayDir, err)
	}

	total := len(result.Photos)
	for i, photo := range result.Photos {
		select {
		case <-ctx.Done():
			return report, appErrors.Wrap(appErrors.Canceled, "fetch", photo.URL, ctx.Err())
		default:
		}

		item := domain.FetchItem{
			Photo:     photo,
			LocalPath: filepath.Join(dayDir, filepath.Base(photo.Name)),
			TakenAt:   photo.LastModified,
		}

		exists, err := f.FS.Exists(item.LocalPath)
		if err != nil {
			return report, appErrors.Wrap(appErrors.IOFailure, "stat", item.LocalPath, err)
		}
		if exists && !f.Overwrite {
			f.Logger.Verbosef("Skipping %s, already downloaded", item.LocalPath)
			report.Skipped = append(report.Skipped, item)
			f.progress(i+1, total, photo.Name)
			continue
		}

		n, err := f.download(ctx, cfg, photo, item.LocalPath)
		if err != nil {
			return report, err
		}
		item.Bytes = n
		report.Bytes += n

		if warning := f.resolveTakenAt(ctx, &item); warning != "" {
			report.Warnings = append(report.Warnings, warning)
		}
		report.Downloaded = append(report.Downloaded, item)
		f.Logger.Verbosef("Downloaded %s (%d bytes)", item.LocalPath, n)
		f.progress(i+1, total, photo.Name)
	}
	return report, nil
}

// download writes into a .part file first so an interrupted transfer never
// looks like a finished photo.
func (f *Fetcher) download(ctx context.Context, cfg config.ServerConfig, photo domain.Photo, dst string) (int64, error) {
	part := dst + ".part"
	w, err := f.FS.Create(part)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.IOFailure, "create", part, err)
	}

	n, err := f.Client.Download(ctx, cfg, photo.URL, w)
	closeErr := w.Close()
	if err == nil && closeErr != nil {
		err = appErrors.Wrap(appErrors.IOFailure, "close", part, closeErr)
	}
	if err != nil {
		_ = f.FS.Remove(part)
		return 0, err
	}
	if err := f.FS.Rename(part, dst); err != nil {
		_ = f.FS.Remove(part)
		return 0, appErrors.Wrap(appErrors.IOFailure, "rename", dst, err)
	}
	return n, nil
}

func (f *Fetcher) resolveTakenAt(ctx context.Context, item *domain.FetchItem) string {
	ext := filepath.Ext(item.LocalPath)
	if f.Exif == nil || !(domain.IsJpegExtension(ext) || domain.IsRawExtension(ext)) {
		return ""
	}
	takenAt, err := f.Exif.DateTimeOriginal(ctx, item.LocalPath)
	if err != nil {
		return fmt.Sprintf("EXIF not found for %s, using last-modified time", filepath.Base(item.LocalPath))
	}
	item.TakenAt = takenAt
	return ""
}

func (f *Fetcher) progress(current, total int, name string) {
	if f.OnProgress != nil {
		f.OnProgress(current, total, name)
	}
}
