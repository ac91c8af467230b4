package rill

import (
	"fmt"
	"io"
	"os"

	"github.com/lyraproj/issue/issue"
)

type (
	LogLevel string

	Logger interface {
		Log(level LogLevel, args ...Value)

		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(reported issue.Reported)
	}

	stdlog struct {
		out io.Writer
		err io.Writer
	}

	LogEntry struct {
		level   LogLevel
		message string
	}

	// ArrayLogger collects entries in memory. Used by tests and by embedders
	// that surface runtime log output in their own UI.
	ArrayLogger struct {
		entries []*LogEntry
	}
)

const (
	DEBUG   = LogLevel(`debug`)
	INFO    = LogLevel(`info`)
	WARNING = LogLevel(`warning`)
	ERR     = LogLevel(`err`)
)

func NewStdLogger() Logger {
	return &stdlog{os.Stdout, os.Stderr}
}

func (l *stdlog) Log(level LogLevel, args ...Value) {
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	for _, arg := range args {
		io.WriteString(w, arg.String())
	}
	fmt.Fprintln(w)
}

func (l *stdlog) Logf(level LogLevel, format string, args ...interface{}) {
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func (l *stdlog) writerFor(level LogLevel) io.Writer {
	switch level {
	case DEBUG, INFO:
		return l.out
	default:
		return l.err
	}
}

func (l *stdlog) LogIssue(reported issue.Reported) {
	fmt.Fprintln(l.err, reported.Error())
}

func NewArrayLogger() *ArrayLogger {
	return &ArrayLogger{make([]*LogEntry, 0, 16)}
}

func (l *ArrayLogger) Entries(level LogLevel) (result []string) {
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.level == level {
			result = append(result, entry.message)
		}
	}
	return
}

func (l *ArrayLogger) Log(level LogLevel, args ...Value) {
	msg := ``
	for _, arg := range args {
		msg += arg.String()
	}
	l.entries = append(l.entries, &LogEntry{level, msg})
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	l.entries = append(l.entries, &LogEntry{level, fmt.Sprintf(format, args...)})
}

func (l *ArrayLogger) LogIssue(reported issue.Reported) {
	level := WARNING
	if reported.Severity() == issue.SeverityError {
		level = ERR
	}
	l.entries = append(l.entries, &LogEntry{level, reported.Error()})
}
