package logger

import (
	"errors"
	"io"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appLogName      = "app.log"
	securityLogName = "security.log"

	maxSizeMB  = 1
	maxBackups = 10
)

// Files owns the rotating log files of the service. Both writers are nil when
// file logging is disabled.
type Files struct {
	App      io.WriteCloser
	Security io.WriteCloser
}

// NewFiles opens app.log and security.log inside dir. An empty dir disables files.
func NewFiles(dir string) *Files {
	if dir == "" {
		return &Files{}
	}
	return &Files{
		App:      NewRotatingFile(filepath.Join(dir, appLogName)),
		Security: NewRotatingFile(filepath.Join(dir, securityLogName)),
	}
}

// NewRotatingFile returns a writer rotating at 1 MB and keeping 10 backups.
func NewRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
}

// Close flushes and closes opened files.
func (f *Files) Close() error {
	var errs []error
	for _, w := range []io.WriteCloser{f.App, f.Security} {
		if w == nil {
			continue
		}
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
