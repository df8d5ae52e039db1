package logger

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Level is the minimum severity a logger writes.
type Level uint32

// Supported levels, ordered by severity.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelTags = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

var levelsByName = map[string]Level{
	"trace": LevelTrace, "trc": LevelTrace,
	"debug": LevelDebug, "dbg": LevelDebug,
	"info": LevelInfo, "inf": LevelInfo,
	"warn": LevelWarn, "wrn": LevelWarn,
	"error": LevelError, "err": LevelError,
	"critical": LevelCritical, "crt": LevelCritical,
	"off": LevelOff,
}

// LevelFromString parses a level by its name or tag, case insensitively.
// Unknown names yield LevelInfo and false.
func LevelFromString(s string) (Level, bool) {
	level, ok := levelsByName[strings.ToLower(s)]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

// String returns the tag written in front of log lines of this level.
func (l Level) String() string {
	if l >= LevelOff {
		return levelTags[LevelOff]
	}
	return levelTags[l]
}

type logEntry struct {
	log   []byte
	level Level
}

// Logger writes leveled, tagged messages for one subsystem into a Backend.
type Logger struct {
	level   uint32 // atomic, holds a Level
	tag     string
	backend *Backend
}

// Level returns the current logging level of the logger.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel changes the logging level of the logger.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.backend
}

// Tracef formats and writes a message at LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.write(LevelTrace, format, args...)
}

// Debugf formats and writes a message at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(LevelDebug, format, args...)
}

// Infof formats and writes a message at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, format, args...)
}

// Warnf formats and writes a message at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(LevelWarn, format, args...)
}

// Errorf formats and writes a message at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, format, args...)
}

// Criticalf formats and writes a message at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, format, args...)
}

func (l *Logger) write(level Level, format string, args ...interface{}) {
	if level < l.Level() || !l.backend.IsRunning() {
		return
	}
	l.backend.send(logEntry{
		log:   l.format(level, fmt.Sprintf(format, args...)),
		level: level,
	})
}

// MeasureExecutionTime logs the start of operation at debug level and
// returns a function logging its end with the time it took. Nothing is
// timed when debug entries would be dropped anyway.
func (l *Logger) MeasureExecutionTime(operation string) (onEnd func()) {
	if l.Level() > LevelDebug {
		return func() {}
	}
	start := time.Now()
	l.Debugf("%s start", operation)
	return func() {
		l.Debugf("%s end. Took: %s", operation, time.Since(start))
	}
}

// format renders "2006-01-02 15:04:05.000 [LVL] TAG: message" followed by
// the callsite when the backend was configured to include it.
func (l *Logger) format(level Level, message string) []byte {
	buf := bytes.Buffer{}
	buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(level.String())
	buf.WriteString("] ")
	buf.WriteString(l.tag)
	if l.backend.flags&(LogFlagShortFile|LogFlagLongFile) != 0 {
		buf.WriteString(" ")
		buf.WriteString(callsite(l.backend.flags))
	}
	buf.WriteString(": ")
	buf.WriteString(message)
	if !strings.HasSuffix(message, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// callsite skips the logger's own frames to reach the caller of Infof and friends.
func callsite(flag uint32) string {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "???:0"
	}
	if flag&LogFlagShortFile != 0 {
		if i := strings.LastIndexByte(file, '/'); i >= 0 {
			file = file[i+1:]
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}
