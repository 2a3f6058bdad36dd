// Package watch polls an inbox directory for workbooks and archives dropped
// by upstream systems. Files are picked up only once their size stops
// changing, dispatched to a handler by extension, and moved to done or
// errors afterwards so the inbox drains no matter what.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xl-idp/unzipping/internal/observability"
)

// Handler processes one stable file. origin is the inbox entry the file
// arrived as; for files extracted from an archive it names the archive.
type Handler func(ctx context.Context, path, origin string) error

// Config wires a Watcher.
type Config struct {
	// InDir is the polled inbox.
	InDir string
	// DoneDir and ErrorsDir receive consumed inbox entries.
	DoneDir   string
	ErrorsDir string
	// ScratchDir holds extracted archive contents; wiped on startup.
	ScratchDir string
	// StabilityWait is how long a file's size must hold steady before it is
	// considered fully uploaded. Zero disables the gate (tests).
	StabilityWait time.Duration
	// PollInterval between inbox sweeps.
	PollInterval time.Duration
	// Sleep is injectable for tests.
	Sleep func(time.Duration)
}

// Watcher owns the inbox loop.
type Watcher struct {
	cfg       Config
	handlers  map[string]Handler
	unpackers map[string]Unpacker
	log       *observability.Logger
}

// New creates a watcher and prepares its directories: the scratch area is
// recreated empty so half-extracted archives from a crashed run cannot leak
// into this one.
func New(cfg Config, log *observability.Logger) (*Watcher, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if log == nil {
		log = observability.Nop()
	}
	for _, dir := range []string{cfg.InDir, cfg.DoneDir, cfg.ErrorsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if cfg.ScratchDir != "" {
		if err := os.RemoveAll(cfg.ScratchDir); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Watcher{
		cfg:       cfg,
		handlers:  make(map[string]Handler),
		unpackers: make(map[string]Unpacker),
		log:       log,
	}, nil
}

// Handle registers a handler for a file extension (".xlsx").
func (w *Watcher) Handle(ext string, h Handler) {
	w.handlers[strings.ToLower(ext)] = h
}

// HandleArchive registers an unpacker for an archive extension (".zip").
// Extracted files are dispatched through the registered handlers.
func (w *Watcher) HandleArchive(ext string, u Unpacker) {
	w.unpackers[strings.ToLower(ext)] = u
}

// Run sweeps the inbox until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if _, err := w.Sweep(ctx); err != nil {
			w.log.Error().Err(err).Msg("inbox sweep failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep processes every stable file currently in the inbox once and returns
// how many were consumed.
func (w *Watcher) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.cfg.InDir)
	if err != nil {
		return 0, err
	}

	consumed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ctx.Err() != nil {
			return consumed, ctx.Err()
		}
		path := filepath.Join(w.cfg.InDir, entry.Name())
		if !w.stable(path) {
			w.log.Info().Str("file", path).Msg("file still growing, postponing")
			continue
		}
		w.dispatch(ctx, path)
		consumed++
	}
	return consumed, nil
}

// stable reports whether the file's size holds across the stability wait.
func (w *Watcher) stable(path string) bool {
	before, err := os.Stat(path)
	if err != nil {
		return false
	}
	if w.cfg.StabilityWait > 0 {
		w.cfg.Sleep(w.cfg.StabilityWait)
	}
	after, err := os.Stat(path)
	if err != nil {
		return false
	}
	return before.Size() == after.Size()
}

func (w *Watcher) dispatch(ctx context.Context, path string) {
	ext := strings.ToLower(filepath.Ext(path))

	if unpacker, ok := w.unpackers[ext]; ok {
		w.consumeArchive(ctx, path, unpacker)
		return
	}
	handler, ok := w.handlers[ext]
	if !ok {
		w.log.Warn().Str("file", path).Msg("no handler for extension, rejecting")
		w.moveTo(path, w.cfg.ErrorsDir)
		return
	}
	if err := handler(ctx, path, path); err != nil {
		w.moveTo(path, w.cfg.ErrorsDir)
		return
	}
	w.moveTo(path, w.cfg.DoneDir)
}

// consumeArchive extracts the archive into a scratch subdirectory and runs
// each extracted file through its handler. The archive itself lands in done
// only when every extracted file was handled.
func (w *Watcher) consumeArchive(ctx context.Context, path string, unpacker Unpacker) {
	scratch := filepath.Join(w.cfg.ScratchDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	files, err := unpacker.Unpack(path, scratch)
	if err != nil {
		w.log.Error().Str("archive", path).Err(err).Msg("unpack failed")
		w.moveTo(path, w.cfg.ErrorsDir)
		return
	}
	w.log.Info().Str("archive", path).Int("files", len(files)).Msg("archive unpacked")

	if w.handleExtracted(ctx, files, path) {
		w.moveTo(path, w.cfg.ErrorsDir)
		return
	}
	w.moveTo(path, w.cfg.DoneDir)
}

// handleExtracted dispatches extracted files through the handlers, unpacking
// nested archives in place. origin is the inbox entry the whole tree came
// from. Reports whether any entry failed.
func (w *Watcher) handleExtracted(ctx context.Context, files []string, origin string) (failed bool) {
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file))
		if nested, ok := w.unpackers[ext]; ok {
			inner, err := nested.Unpack(file, strings.TrimSuffix(file, filepath.Ext(file)))
			if err != nil {
				w.log.Error().Str("archive", file).Err(err).Msg("nested unpack failed")
				failed = true
				continue
			}
			w.log.Info().Str("archive", file).Int("files", len(inner)).Msg("nested archive unpacked")
			if w.handleExtracted(ctx, inner, origin) {
				failed = true
			}
			continue
		}
		handler, ok := w.handlers[ext]
		if !ok {
			w.log.Warn().Str("file", file).Msg("archive entry has no handler, skipping")
			continue
		}
		if err := handler(ctx, file, origin); err != nil {
			failed = true
		}
	}
	return failed
}

func (w *Watcher) moveTo(path, dir string) {
	dst := filepath.Join(dir, filepath.Base(path))
	if err := moveFile(path, dst); err != nil {
		w.log.Error().Str("file", path).Str("dest", dir).Err(err).Msg("move failed")
	}
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		in.Close()
		return err
	}
	_, copyErr := io.Copy(out, in)
	in.Close()
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, copyErr)
	}
	return os.Remove(src)
}
