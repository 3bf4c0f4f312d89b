package app

import (
	"context"
	"io"
	"io/fs"
	"time"

	"onthisday/internal/config"
	"onthisday/internal/domain"
)

type DavClient interface {
	Propfind(ctx context.Context, cfg config.ServerConfig, body string) (string, error)
}

type MultistatusParser interface {
	Parse(body string) (domain.Listing, error)
}

type Downloader interface {
	Download(ctx context.Context, cfg config.ServerConfig, rawURL string, w io.Writer) (int64, error)
}

type FileSystem interface {
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	Create(path string) (io.WriteCloser, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}

// StatusSink receives status events in the order they are recorded.
type StatusSink func(domain.StatusEvent)
