package app

import (
	"context"
	"errors"
	"fmt"

	"onthisday/internal/config"
	"onthisday/internal/domain"
	appErrors "onthisday/internal/errors"
	"onthisday/internal/logging"
)

// Engine runs the two listing pipelines: validate, PROPFIND, parse,
// classify and shape. Each call is independent; nothing is cached.
type Engine struct {
	Client   DavClient
	Parser   MultistatusParser
	Matcher  DateMatcher
	Logger   logging.Logger
	OnStatus StatusSink
}

// recorder keeps events in order and forwards them to the sink.
type recorder struct {
	events []domain.StatusEvent
	sink   StatusSink
}

func (r *recorder) emit(stage domain.Stage, format string, args ...any) {
	ev := domain.StatusEvent{Stage: stage, Message: fmt.Sprintf(format, args...)}
	r.events = append(r.events, ev)
	if r.sink != nil {
		r.sink(ev)
	}
}

func (r *recorder) fail(err error) {
	r.emit(domain.StageFailure, "%s", appErrors.UserMessage(err))
}

func (e *Engine) ready() error {
	if e.Client == nil || e.Parser == nil {
		return appErrors.Wrap(appErrors.Internal, "engine", "", errors.New("engine requires Client and Parser"))
	}
	return nil
}

// ListFolders lists the collections directly below cfg.TargetPath, which
// may be empty for the root of the user's files.
func (e *Engine) ListFolders(ctx context.Context, cfg config.ServerConfig) (domain.FolderResult, error) {
	rec := &recorder{sink: e.OnStatus}
	fail := func(err error) (domain.FolderResult, error) {
		rec.fail(err)
		e.Logger.Warnf("folder listing failed: %v", err)
		return domain.FolderResult{Events: rec.events}, err
	}

	if err := e.ready(); err != nil {
		return fail(err)
	}
	if err := cfg.Validate(false); err != nil {
		return fail(err)
	}
	cfg = cfg.Normalized()
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return fail(err)
	}

	stop := e.Logger.Measure("Listing folders")
	defer stop()

	rec.emit(domain.StageStart, "Listing folders under %q...", displayPath(cfg.TargetPath))
	listing, err := e.query(ctx, cfg, FolderQuery)
	if err != nil {
		return fail(err)
	}

	folders := classifier.Folders(listing)
	e.Logger.Verbosef("Listing had %d entries, %d folders", len(listing), len(folders))
	rec.emit(domain.StageSuccess, "Found %d folder(s).", len(folders))
	return domain.FolderResult{Folders: folders, Events: rec.events}, nil
}

// DiscoverPhotos finds the files in cfg.TargetPath last modified on today's
// month and day of any year.
func (e *Engine) DiscoverPhotos(ctx context.Context, cfg config.ServerConfig) (domain.PhotoResult, error) {
	rec := &recorder{sink: e.OnStatus}
	today := e.Matcher.Today()
	day := today.Format("January 2")
	fail := func(err error) (domain.PhotoResult, error) {
		rec.fail(err)
		e.Logger.Warnf("photo check failed: %v", err)
		return domain.PhotoResult{Day: today, Events: rec.events}, err
	}

	if err := e.ready(); err != nil {
		return fail(err)
	}
	if err := cfg.Validate(true); err != nil {
		return fail(err)
	}
	cfg = cfg.Normalized()
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return fail(err)
	}

	stop := e.Logger.Measure("Checking photos")
	defer stop()

	rec.emit(domain.StageStart, "Checking folder %q for photos taken on %s in past years...", cfg.TargetPath, day)
	listing, err := e.query(ctx, cfg, PhotoQuery)
	if err != nil {
		return fail(err)
	}

	todayToken := domain.MonthDay(today)
	var photos []domain.Photo
	var warnings []string
	for _, entry := range classifier.Files(listing) {
		if !entry.HasLastModified {
			continue
		}
		if cfg.ImagesOnly && !domain.IsImageName(entry.Name()) {
			continue
		}
		modified, err := e.Matcher.Parse(entry.LastModifiedRaw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Unreadable date %q for %s", entry.LastModifiedRaw, entry.Name()))
			e.Logger.Warnf("could not parse last-modified %q of %s", entry.LastModifiedRaw, entry.Path)
			continue
		}
		if domain.MonthDay(modified) != todayToken {
			continue
		}
		photos = append(photos, domain.Photo{
			URL:          classifier.ResolveURL(entry),
			Path:         entry.Path,
			Name:         entry.Name(),
			Size:         entry.ContentLength,
			LastModified: modified,
		})
	}
	e.Logger.Verbosef("Listing had %d entries, %d matched %s", len(listing), len(photos), todayToken)

	if len(photos) > 0 {
		rec.emit(domain.StageSuccess, "Found %d photo(s) taken on %s in past years!", len(photos), day)
	} else {
		rec.emit(domain.StageSuccess, "No photos from %s in past years.", day)
	}
	return domain.PhotoResult{Photos: photos, Day: today, Events: rec.events, Warnings: warnings}, nil
}

// query performs the network call and the parse. Nothing runs after a
// canceled request.
func (e *Engine) query(ctx context.Context, cfg config.ServerConfig, body string) (domain.Listing, error) {
	raw, err := e.Client.Propfind(ctx, cfg, body)
	if err != nil {
		if ctx.Err() != nil && appErrors.KindOf(err) == appErrors.Internal {
			err = appErrors.Wrap(appErrors.Canceled, "propfind", cfg.TargetPath, err)
		}
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, appErrors.Wrap(appErrors.Canceled, "propfind", cfg.TargetPath, ctxErr)
	}
	listing, err := e.Parser.Parse(raw)
	if err != nil {
		if appErrors.KindOf(err) == appErrors.Internal {
			err = appErrors.Wrap(appErrors.ParseFailure, "parse multistatus", cfg.TargetPath, err)
		}
		return nil, err
	}
	return listing, nil
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// ListFoldersAsync runs ListFolders on its own goroutine. OnStatus is then
// called from that goroutine.
func (e *Engine) ListFoldersAsync(ctx context.Context, cfg config.ServerConfig) *Future[domain.FolderResult] {
	return Go(ctx, func(ctx context.Context) (domain.FolderResult, error) {
		return e.ListFolders(ctx, cfg)
	})
}

// DiscoverPhotosAsync runs DiscoverPhotos on its own goroutine. OnStatus is
// then called from that goroutine.
func (e *Engine) DiscoverPhotosAsync(ctx context.Context, cfg config.ServerConfig) *Future[domain.PhotoResult] {
	return Go(ctx, func(ctx context.Context) (domain.PhotoResult, error) {
		return e.DiscoverPhotos(ctx, cfg)
	})
}
