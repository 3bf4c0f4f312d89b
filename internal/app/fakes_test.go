package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"
	"time"

	"onthisday/internal/config"
	"onthisday/internal/domain"
	"onthisday/internal/infra/webdav"
)

type fakeDav struct {
	body   string
	err    error
	calls  int
	bodies []string
}

func (f *fakeDav) Propfind(ctx context.Context, cfg config.ServerConfig, body string) (string, error) {
	f.calls++
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

// blockingDav waits for the context to end, like a hung server.
type blockingDav struct {
	started chan struct{}
}

func (b *blockingDav) Propfind(ctx context.Context, cfg config.ServerConfig, body string) (string, error) {
	close(b.started)
	<-ctx.Done()
	return "", ctx.Err()
}

type countingParser struct {
	calls int
}

func (p *countingParser) Parse(body string) (domain.Listing, error) {
	p.calls++
	return webdav.ParseString(body)
}

type fakeDownloader struct {
	content map[string]string
	err     error
	urls    []string
}

func (f *fakeDownloader) Download(ctx context.Context, cfg config.ServerConfig, rawURL string, w io.Writer) (int64, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return 0, f.err
	}
	n, err := io.WriteString(w, f.content[rawURL])
	return int64(n), err
}

type memFS struct {
	mu      sync.Mutex
	files   map[string][]byte
	dirs    map[string]bool
	removed []string
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}, dirs: map[string]bool{}}
}

type memFile struct {
	fs   *memFS
	path string
	buf  bytes.Buffer
}

func (m *memFile) Write(p []byte) (int, error) { return m.buf.Write(p) }

func (m *memFile) Close() error {
	m.fs.mu.Lock()
	defer m.fs.mu.Unlock()
	m.fs.files[m.path] = m.buf.Bytes()
	return nil
}

func (m *memFS) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *memFS) Create(path string) (io.WriteCloser, error) {
	return &memFile{fs: m, path: path}, nil
}

func (m *memFS) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldPath]
	if !ok {
		return fs.ErrNotExist
	}
	delete(m.files, oldPath)
	m.files[newPath] = data
	return nil
}

func (m *memFS) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	m.removed = append(m.removed, path)
	return nil
}

type fakeExif struct {
	taken map[string]time.Time
}

func (f fakeExif) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	if t, ok := f.taken[path]; ok {
		return t, nil
	}
	return time.Time{}, errors.New("missing exif")
}
