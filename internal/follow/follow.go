// Package follow tails a chat log file and hands each appended line to a
// callback.
package follow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/seabearDEV/hlwords/internal/logging"
)

// ErrFileGone is returned when the followed file is removed or renamed.
var ErrFileGone = errors.New("followed file removed or renamed")

// LineFunc handles one complete line, without its line terminator.
type LineFunc func(line string) error

// Follower reads lines appended to a file. Lines are handled from the
// goroutine that calls Run, one at a time.
type Follower struct {
	path      string
	handle    LineFunc
	fromStart bool
	logger    *logging.Logger

	file    *os.File
	reader  *bufio.Reader
	offset  int64
	pending strings.Builder

	ready func()
}

// Option configures a Follower.
type Option func(*Follower)

// FromStart handles the lines already in the file before following it.
func FromStart(on bool) Option {
	return func(f *Follower) {
		f.fromStart = on
	}
}

// WithLogger sets the logger for watch events and errors.
func WithLogger(l *logging.Logger) Option {
	return func(f *Follower) {
		f.logger = l
	}
}

// New creates a Follower for path.
func New(path string, handle LineFunc, opts ...Option) *Follower {
	f := &Follower{
		path:   filepath.Clean(path),
		handle: handle,
		logger: logging.NopLogger(),
		ready:  func() {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run follows the file until ctx is done, the file disappears, or the line
// handler fails. Cancellation returns nil.
func (f *Follower) Run(ctx context.Context) error {
	if err := f.open(); err != nil {
		return err
	}
	defer f.file.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so that truncate-and-recreate by log rotation
	// still produces events.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	f.logger.Debug("following file", "path", f.path, "offset", f.offset)

	if f.fromStart {
		if err := f.drain(); err != nil {
			return err
		}
	}
	f.ready()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				return fmt.Errorf("%w: %s", ErrFileGone, f.path)
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if err := f.drain(); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watch error", "path", f.path, "error", err)
		}
	}
}

// open opens the file and positions the reader at the end, or at the start
// when following from the start.
func (f *Follower) open() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	f.file = file

	if !f.fromStart {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return fmt.Errorf("seek %s: %w", f.path, err)
		}
		f.offset = end
	}
	f.reader = bufio.NewReader(file)
	return nil
}

// drain handles every complete line between the last offset and the end of
// the file. A trailing partial line is kept until its newline arrives.
func (f *Follower) drain() error {
	info, err := f.file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}
	if info.Size() < f.offset {
		f.logger.Info("file truncated, reading from start", "path", f.path)
		if _, err := f.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("seek %s: %w", f.path, err)
		}
		f.offset = 0
		f.pending.Reset()
		f.reader.Reset(f.file)
	}

	for {
		chunk, err := f.reader.ReadString('\n')
		f.offset += int64(len(chunk))
		if err == io.EOF {
			f.pending.WriteString(chunk)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", f.path, err)
		}

		line := strings.TrimRight(chunk, "\r\n")
		if f.pending.Len() > 0 {
			line = f.pending.String() + line
			f.pending.Reset()
		}
		if err := f.handle(line); err != nil {
			return err
		}
	}
}
