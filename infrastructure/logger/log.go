package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend shared by all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggersMutex sync.Mutex
	subsystemLoggers      = map[string]*Logger{}
)

// RegisterSubSystem returns the logger of the given subsystem, creating it
// on first use. Loggers start at LevelInfo.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		logger.SetLevel(LevelInfo)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// Get returns the logger of a registered subsystem.
func Get(subsystem string) (logger *Logger, ok bool) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	logger, ok = subsystemLoggers[subsystem]
	return
}

// SupportedSubsystems returns a sorted slice of the registered subsystems.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsystem := range subsystemLoggers {
		subsystems = append(subsystems, subsystem)
	}
	sort.Strings(subsystems)
	return subsystems
}

// SetLogLevel sets the logging level of one subsystem. Unknown subsystems
// are ignored.
func SetLogLevel(subsystem string, level Level) {
	logger, ok := Get(subsystem)
	if !ok {
		return
	}
	logger.SetLevel(level)
}

// SetLogLevels sets the logging level of every registered subsystem.
func SetLogLevels(level Level) {
	for _, subsystem := range SupportedSubsystems() {
		SetLogLevel(subsystem, level)
	}
}

// ParseAndSetLogLevels applies a debuglevel specification, either a single
// level for all subsystems ("debug") or a list of pairs
// ("BLDR=trace,CLCT=info").
func ParseAndSetLogLevels(spec string) error {
	if !strings.Contains(spec, ",") && !strings.Contains(spec, "=") {
		level, ok := LevelFromString(spec)
		if !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", spec)
		}
		SetLogLevels(level)
		return nil
	}

	for _, pair := range strings.Split(spec, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 {
			return errors.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", pair)
		}
		subsystem, levelString := fields[0], fields[1]
		if _, exists := Get(subsystem); !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %s",
				subsystem, strings.Join(SupportedSubsystems(), ", "))
		}
		level, ok := LevelFromString(levelString)
		if !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", levelString)
		}
		SetLogLevel(subsystem, level)
	}
	return nil
}

// InitLog attaches the log files to the backend and starts it. Warnings
// and errors also go to errLogFile; entries at stderrLevel and above are
// echoed to stderr unless stderrLevel is LevelOff.
func InitLog(logFile, errLogFile string, stderrLevel Level) {
	exitOnError := func(err error, format string, args ...interface{}) {
		if err != nil {
			fmt.Fprintf(os.Stderr, format+": %+v\n", append(args, err)...)
			os.Exit(1)
		}
	}

	exitOnError(BackendLog.AddLogFile(logFile, LevelTrace), "Error adding log file %s", logFile)
	exitOnError(BackendLog.AddLogFile(errLogFile, LevelWarn), "Error adding log file %s", errLogFile)
	if stderrLevel < LevelOff {
		exitOnError(BackendLog.AddStderr(stderrLevel), "Error adding stderr at level %s", stderrLevel)
	}
	exitOnError(BackendLog.Run(), "Error starting the logger")
}
