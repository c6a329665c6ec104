package logging

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-logfmt/logfmt"
)

const appName = "piechart"

// Setup installs and returns the default logger. In debug mode every record
// goes to w through charmbracelet/log; otherwise only warnings and errors
// are written, in a compact logfmt form.
func Setup(w io.Writer, debug bool) *slog.Logger {
	var logger *slog.Logger
	if debug {
		charmLogger := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          appName,
		})
		logger = slog.New(charmLogger)
	} else {
		handler := slog.NewTextHandler(NewSlogWriter(w), &slog.HandlerOptions{Level: slog.LevelWarn})
		logger = slog.New(handler)
	}
	slog.SetDefault(logger)
	return logger
}

type slogWriter struct {
	w io.Writer
}

// Write re-encodes the records of a slog text handler without their
// timestamp: "piechart: warn: message key=value".
func (sw *slogWriter) Write(p []byte) (int, error) {
	var out bytes.Buffer

	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		var level, message string
		var attrs bytes.Buffer
		enc := logfmt.NewEncoder(&attrs)

		for d.ScanKeyval() {
			switch key := string(d.Key()); key {
			case "time":
			case "level":
				level = strings.ToLower(string(d.Value()))
			case "msg":
				message = string(d.Value())
			default:
				if err := enc.EncodeKeyval(key, string(d.Value())); err != nil {
					return 0, fmt.Errorf("logfmt.EncodeKeyval: %w", err)
				}
			}
		}

		fmt.Fprintf(&out, "%s: %s: %s", appName, level, message)
		if attrs.Len() > 0 {
			out.WriteByte(' ')
			out.Write(attrs.Bytes())
		}
		out.WriteByte('\n')
	}
	if d.Err() != nil {
		return 0, fmt.Errorf("logfmt.ScanRecord: %w", d.Err())
	}

	if _, err := sw.w.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewSlogWriter returns a writer for slog.NewTextHandler that forwards
// condensed records to w.
func NewSlogWriter(w io.Writer) io.Writer {
	return &slogWriter{w: w}
}

// RecoverPanic is a common function to handle panics gracefully.
// It logs the error, writes a panic report with stack trace to the temp
// directory, and executes an optional cleanup function.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error(fmt.Sprintf("Panic in %s: %v", name, r))

		timestamp := time.Now().Format("20060102-150405")
		filename := filepath.Join(os.TempDir(), fmt.Sprintf("%s-panic-%s-%s.log", appName, name, timestamp))

		file, err := os.Create(filename)
		if err != nil {
			slog.Error(fmt.Sprintf("Failed to create panic log file '%s': %v", filename, err))
		} else {
			defer file.Close()
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", string(debug.Stack()))
			slog.Info(fmt.Sprintf("Panic details written to %s", filename))
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
