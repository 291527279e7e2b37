// Package logs builds the process logger: a text or JSON handler on the
// given writer fanned out with the systemd journal.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is shared by every handler New builds, so it can be changed at
// runtime.
var Level = new(slog.LevelVar)

type Options struct {
	// Format is "text" or "json".
	Format string
	Level  string
}

// isSystemdService is swapped in tests.
var isSystemdService = func() bool {
	p, err := getCgroupPath()
	if err != nil {
		return false
	}
	return strings.HasSuffix(path.Dir(p), ".service")
}

// newJournalHandler is swapped in tests.
var newJournalHandler = func(level slog.Leveler) (slog.Handler, error) {
	h, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse log level: %w", err)
	}
	return l, nil
}

// New fans records out to w and, when it can be opened, the systemd
// journal. Under a systemd service the journal replaces w unless it fails
// to open.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	Level.Set(level)

	var handlers []slog.Handler

	// local
	var terminalHandler slog.Handler
	systemd := isSystemdService()
	if !systemd {
		terminalHandler = newWriterHandler(w, opts.Format)
		handlers = append(handlers, terminalHandler)
	}

	// systemd journal
	journalHandler, err := newJournalHandler(Level)
	if err != nil {
		if terminalHandler == nil {
			// never end up with no output at all
			terminalHandler = newWriterHandler(w, opts.Format)
			handlers = append(handlers, terminalHandler)
		}
		record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
		record.Add("error", err)
		_ = terminalHandler.Handle(context.Background(), record)
	} else {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}

func newWriterHandler(w io.Writer, format string) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: Level}
	if format == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	return cgroupPath(string(content)), nil
}

// cgroupPath picks the unit path out of /proc/self/cgroup: the unified
// hierarchy line ("0::/...") on cgroup v2, the name=systemd controller on v1.
func cgroupPath(content string) string {
	var legacy string
	for _, line := range strings.Split(content, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 3)
		if len(parts) != 3 {
			continue
		}
		switch {
		case parts[0] == "0" && parts[1] == "":
			return parts[2]
		case parts[1] == "name=systemd":
			legacy = parts[2]
		}
	}
	return legacy
}
