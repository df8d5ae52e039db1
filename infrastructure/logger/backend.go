package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// Backend flags, set through the comma separated LOGFLAGS environment
// variable.
const (
	// LogFlagLongFile adds the full path and line of the callsite,
	// e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line of the callsite,
	// e.g. main.go:123. Wins over LogFlagLongFile.
	LogFlagShortFile
)

var flagsByName = map[string]uint32{
	"longfile":  LogFlagLongFile,
	"shortfile": LogFlagShortFile,
}

func flagsFromEnv() uint32 {
	var flags uint32
	for _, name := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		flags |= flagsByName[strings.TrimSpace(name)]
	}
	return flags
}

const (
	entriesBuffer = 64

	defaultThresholdKB = 10 * 1000 // 10 MB per log file
	defaultMaxRolls    = 4
)

// output is a destination of log entries at minLevel and above. closer is
// nil for writers the backend doesn't own, such as stderr.
type output struct {
	writer   io.Writer
	minLevel Level
	closer   io.Closer
}

// Backend fans the entries of all its subsystem loggers out to its outputs
// from a single goroutine, so lines of different subsystems never
// interleave. Outputs are added before Run; entries logged before Run or
// after Close are dropped.
type Backend struct {
	flags   uint32
	outputs []output

	// stateLock guards running against Close: writers hold it for reading
	// while they send, Close takes it for writing before closing entries.
	stateLock sync.RWMutex
	running   bool
	started   bool
	entries   chan logEntry
	stopped   chan struct{}
}

// NewBackendWithFlags returns a backend using flags instead of LOGFLAGS.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{
		flags:   flags,
		entries: make(chan logEntry, entriesBuffer),
		stopped: make(chan struct{}),
	}
}

// NewBackend returns a backend configured by LOGFLAGS.
func NewBackend() *Backend {
	return NewBackendWithFlags(flagsFromEnv())
}

func (b *Backend) addOutput(o output) error {
	b.stateLock.Lock()
	defer b.stateLock.Unlock()
	if b.started {
		return errors.New("outputs can't be added to a started logger")
	}
	b.outputs = append(b.outputs, o)
	return nil
}

// AddLogFile adds a rotated log file receiving entries at minLevel and
// above. The file and its directory are created if missing.
func (b *Backend) AddLogFile(logFile string, minLevel Level) error {
	return b.AddLogFileWithRotation(logFile, minLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithRotation is AddLogFile with explicit rotation settings.
func (b *Backend) AddLogFileWithRotation(logFile string, minLevel Level, thresholdKB int64, maxRolls int) error {
	if logDir := filepath.Dir(logFile); logDir != "." {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	err = b.addOutput(output{writer: r, minLevel: minLevel, closer: r})
	if err != nil {
		_ = r.Close()
		return err
	}
	return nil
}

// AddLogWriter adds a writer receiving entries at minLevel and above. The
// backend closes it on Close.
func (b *Backend) AddLogWriter(writer io.WriteCloser, minLevel Level) error {
	return b.addOutput(output{writer: writer, minLevel: minLevel, closer: writer})
}

// AddStderr echoes entries at minLevel and above to the process' stderr,
// which is left open on Close.
func (b *Backend) AddStderr(minLevel Level) error {
	return b.addOutput(output{writer: os.Stderr, minLevel: minLevel})
}

// Run starts the writing goroutine. It may be called only once.
func (b *Backend) Run() error {
	b.stateLock.Lock()
	defer b.stateLock.Unlock()
	if b.started {
		return errors.New("the logger was already started")
	}
	b.started = true
	b.running = true

	go func() {
		defer close(b.stopped)
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in the logger goroutine: %+v\n%s\n", err, debug.Stack())
			}
		}()
		for entry := range b.entries {
			for _, o := range b.outputs {
				if entry.level >= o.minLevel {
					_, _ = o.writer.Write(entry.log)
				}
			}
		}
	}()
	return nil
}

// IsRunning returns whether the backend accepts entries.
func (b *Backend) IsRunning() bool {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()
	return b.running
}

func (b *Backend) send(entry logEntry) {
	b.stateLock.RLock()
	defer b.stateLock.RUnlock()
	if b.running {
		b.entries <- entry
	}
}

// Close writes the pending entries and closes the outputs the backend owns.
// Calling it more than once is harmless.
func (b *Backend) Close() {
	b.stateLock.Lock()
	wasRunning := b.running
	b.running = false
	if wasRunning {
		close(b.entries)
	}
	b.stateLock.Unlock()

	if !wasRunning {
		return
	}
	<-b.stopped
	for _, o := range b.outputs {
		if o.closer != nil {
			_ = o.closer.Close()
		}
	}
}

// Logger returns a logger of subsystemTag writing to b. It's off until its
// level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{level: uint32(LevelOff), tag: subsystemTag, backend: b}
}
