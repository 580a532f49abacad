package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	filePrefix          = "vaccines-"
	fileSuffix          = ".log"
	defaultMaxFileSize  = 100 * 1024 * 1024
	cleanupInterval     = 24 * time.Hour
	closeTimeout        = 2 * time.Second
	defaultRetentionWks = 4
)

var sequencePattern = regexp.MustCompile(`^vaccines-\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingLogger is an io.Writer that writes into one file per ISO week,
// opening numbered siblings once a file reaches maxFileSize.
type RotatingLogger struct {
	dir         string
	retention   time.Duration
	maxFileSize int64

	mu      sync.Mutex
	file    *os.File
	week    string
	size    atomic.Int64
	now     func() time.Time
	stop    chan struct{}
	stopped chan struct{}
	started atomic.Bool
	once    sync.Once
}

// NewRotatingLogger creates a rotating logger with the default size limit
func NewRotatingLogger(dir string, retentionWeeks int) *RotatingLogger {
	return NewRotatingLoggerWithSizeLimit(dir, retentionWeeks, defaultMaxFileSize)
}

// NewRotatingLoggerWithSizeLimit creates a rotating logger; a zero maxFileSize disables size rotation
func NewRotatingLoggerWithSizeLimit(dir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	if retentionWeeks <= 0 {
		retentionWeeks = defaultRetentionWks
	}
	return &RotatingLogger{
		dir:         dir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		now:         time.Now,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func weekFileName(week string) string {
	return filePrefix + week + fileSuffix
}

// Write implements io.Writer
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(rl.now())
	full := rl.maxFileSize > 0 && rl.size.Load()+int64(len(p)) > rl.maxFileSize
	if rl.file == nil || rl.week != week || full {
		if err := rl.rotate(week, full && rl.week == week); err != nil {
			return 0, err
		}
	}

	n, err := rl.file.Write(p)
	rl.size.Add(int64(n))
	return n, err
}

// rotate opens the file to write into for week. Caller holds mu.
func (rl *RotatingLogger) rotate(week string, sizeExceeded bool) error {
	if rl.file != nil {
		_ = rl.file.Close()
		rl.file = nil
	}

	name := rl.pickFile(week, sizeExceeded)
	path := filepath.Join(rl.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	rl.file = f
	rl.week = week
	rl.size.Store(size)
	return nil
}

// pickFile returns the base week file while it has room, otherwise the
// highest numbered sibling with room, otherwise the next number.
func (rl *RotatingLogger) pickFile(week string, sizeExceeded bool) string {
	base := weekFileName(week)
	if !sizeExceeded {
		info, err := os.Stat(filepath.Join(rl.dir, base))
		if err != nil || rl.maxFileSize == 0 || info.Size() < rl.maxFileSize {
			return base
		}
	}

	highest, lastSize := 0, int64(0)
	matches, _ := filepath.Glob(filepath.Join(rl.dir, filePrefix+week+"_??"+fileSuffix))
	for _, match := range matches {
		m := sequencePattern.FindStringSubmatch(filepath.Base(match))
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		if num > highest {
			highest = num
			lastSize = 0
			if info, err := os.Stat(match); err == nil {
				lastSize = info.Size()
			}
		}
	}

	if highest > 0 && !sizeExceeded && lastSize < rl.maxFileSize {
		return fmt.Sprintf("%s%s_%02d%s", filePrefix, week, highest, fileSuffix)
	}
	return fmt.Sprintf("%s%s_%02d%s", filePrefix, week, highest+1, fileSuffix)
}

// cleanupOldLogs removes log files last modified before the retention window
func (rl *RotatingLogger) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rl.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := rl.now().Add(-rl.retention)
	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(rl.dir, name)) == nil {
			deleted++
		}
	}
	return deleted, nil
}

// startCleanup runs cleanupOldLogs daily until Close
func (rl *RotatingLogger) startCleanup() {
	if !rl.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(rl.stopped)
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-rl.stop:
				return
			case <-ticker.C:
				if n, err := rl.cleanupOldLogs(); err != nil {
					fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
				} else if n > 0 {
					fmt.Fprintf(os.Stderr, "Cleaned up %d old log files\n", n)
				}
			}
		}
	}()
}

// Close stops the cleanup loop and closes the current file. Safe to call twice.
func (rl *RotatingLogger) Close() error {
	var err error
	rl.once.Do(func() {
		close(rl.stop)
		if rl.started.Load() {
			select {
			case <-rl.stopped:
			case <-time.After(closeTimeout):
			}
		}

		rl.mu.Lock()
		defer rl.mu.Unlock()
		if rl.file != nil {
			err = rl.file.Close()
			rl.file = nil
		}
	})
	return err
}
