package auth

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	authLog   = zerolog.Nop()
	authLogMu sync.RWMutex
)

// EnableAuthLog directs authentication attempt records to file at path.
// The returned function closes the file.
func EnableAuthLog(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	authLogMu.Lock()
	authLog = zerolog.New(f).With().Timestamp().Logger()
	authLogMu.Unlock()

	return func() error {
		authLogMu.Lock()
		authLog = zerolog.Nop()
		authLogMu.Unlock()
		return f.Close()
	}, nil
}

// LogAuthAttempt appends an authentication attempt record.
// authType: Local|Refresh|Logout, status: Success|Fail, identifier is email or user id.
func LogAuthAttempt(level zerolog.Level, authType string, status string, identifier string, message string) {
	authLogMu.RLock()
	l := authLog
	authLogMu.RUnlock()

	ev := l.WithLevel(level).
		Str("auth_type", authType).
		Str("status", status)
	if identifier != "" {
		ev = ev.Str("identifier", identifier)
	}
	ev.Msg(message)
}
