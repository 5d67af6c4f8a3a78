package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Tailer follows the game console log from its current end, emitting
// each complete new line. The game occasionally truncates the log in
// place, so a shrink resets the read offset to the start.
type Tailer struct {
	path string
}

func NewTailer(path string) *Tailer {
	return &Tailer{path: path}
}

// Run tails the file until ctx is canceled, sending complete lines on
// out. fsnotify wakes the reader; a slow fallback tick covers
// filesystems that swallow events.
func (t *Tailer) Run(ctx context.Context, out chan<- string) error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open console log: %w", err)
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek console log: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.path); err != nil {
		return fmt.Errorf("watch console log: %w", err)
	}

	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	var partial []byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return fmt.Errorf("watch console log: %w", err)
		case <-tick.C:
		}

		info, err := os.Stat(t.path)
		if err != nil {
			return fmt.Errorf("stat console log: %w", err)
		}
		if info.Size() < offset {
			// Truncated in place; start over.
			offset = 0
			partial = partial[:0]
		}

		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("seek console log: %w", err)
		}

		r := bufio.NewReader(f)
		for {
			line, err := r.ReadBytes('\n')
			offset += int64(len(line))
			if err == nil {
				full := string(append(partial, line...))
				partial = partial[:0]
				select {
				case out <- full:
				case <-ctx.Done():
					return ctx.Err()
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				// Hold incomplete tail until the rest arrives.
				partial = append(partial, line...)
				break
			}
			return fmt.Errorf("read console log: %w", err)
		}
	}
}
