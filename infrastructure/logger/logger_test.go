package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type bufferCloser struct {
	sync.Mutex
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"trace", LevelTrace, true},
		{"DBG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"wrn", LevelWarn, true},
		{"error", LevelError, true},
		{"critical", LevelCritical, true},
		{"off", LevelOff, true},
		{"verbose", LevelInfo, false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.input)
		if level != test.expected || ok != test.ok {
			t.Errorf("LevelFromString(%q): got (%s, %t), want (%s, %t)",
				test.input, level, ok, test.expected, test.ok)
		}
	}
}

func TestBackendFiltersByLevel(t *testing.T) {
	backend := NewBackendWithFlags(0)
	all := &bufferCloser{}
	warnings := &bufferCloser{}
	if err := backend.AddLogWriter(all, LevelDebug); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.AddLogWriter(warnings, LevelWarn); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %+v", err)
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelInfo); err == nil {
		t.Fatalf("AddLogWriter unexpectedly succeeded on a running backend")
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	log.Tracef("dropped %d", 1)
	log.Debugf("debug %d", 2)
	log.Warnf("warn %d", 3)
	backend.Close()

	if !all.closed || !warnings.closed {
		t.Fatalf("Close didn't close all writers")
	}
	if strings.Contains(all.String(), "dropped") {
		t.Errorf("trace entry written below the logger level: %q", all.String())
	}
	if !strings.Contains(all.String(), "[DBG] TEST: debug 2") {
		t.Errorf("debug entry missing: %q", all.String())
	}
	if strings.Contains(warnings.String(), "debug 2") {
		t.Errorf("debug entry reached the warn writer: %q", warnings.String())
	}
	if !strings.Contains(warnings.String(), "[WRN] TEST: warn 3") {
		t.Errorf("warn entry missing: %q", warnings.String())
	}
}

func TestParseAndSetLogLevels(t *testing.T) {
	first := RegisterSubSystem("TST1")
	second := RegisterSubSystem("TST2")

	if err := ParseAndSetLogLevels("debug"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %+v", err)
	}
	if first.Level() != LevelDebug || second.Level() != LevelDebug {
		t.Fatalf("expected all subsystems at debug, got %s and %s", first.Level(), second.Level())
	}

	if err := ParseAndSetLogLevels("TST1=trace,TST2=error"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %+v", err)
	}
	if first.Level() != LevelTrace || second.Level() != LevelError {
		t.Fatalf("unexpected levels %s and %s", first.Level(), second.Level())
	}

	invalid := []string{"loud", "TST1=loud", "NOPE=info", "TST1"}
	for _, spec := range invalid {
		if err := ParseAndSetLogLevels(spec); err == nil {
			t.Errorf("ParseAndSetLogLevels(%q) unexpectedly succeeded", spec)
		}
	}
}

func TestBackendClose(t *testing.T) {
	backend := NewBackendWithFlags(0)
	writer := &bufferCloser{}
	if err := backend.AddLogWriter(writer, LevelInfo); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	log := backend.Logger("TEST")
	log.SetLevel(LevelInfo)

	log.Infof("before run")
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %+v", err)
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("second Run unexpectedly succeeded")
	}
	log.Infof("while running")
	backend.Close()
	backend.Close()
	log.Infof("after close")

	if backend.IsRunning() {
		t.Fatalf("IsRunning is true after Close")
	}
	if !writer.closed {
		t.Fatalf("Close didn't close the writer")
	}
	written := writer.String()
	if strings.Contains(written, "before run") || strings.Contains(written, "after close") {
		t.Errorf("entries outside of Run and Close were written: %q", written)
	}
	if !strings.Contains(written, "while running") {
		t.Errorf("entry written while running is missing: %q", written)
	}

	// A backend that never ran closes without blocking.
	NewBackendWithFlags(0).Close()
}

func TestMeasureExecutionTime(t *testing.T) {
	backend := NewBackendWithFlags(0)
	writer := &bufferCloser{}
	if err := backend.AddLogWriter(writer, LevelTrace); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %+v", err)
	}
	log := backend.Logger("TEST")

	log.SetLevel(LevelInfo)
	log.MeasureExecutionTime("quiet")()
	log.SetLevel(LevelDebug)
	log.MeasureExecutionTime("build")()
	backend.Close()

	written := writer.String()
	if strings.Contains(written, "quiet") {
		t.Errorf("execution time logged above debug level: %q", written)
	}
	if !strings.Contains(written, "build start") || !strings.Contains(written, "build end. Took: ") {
		t.Errorf("execution time entries missing: %q", written)
	}
}

func TestFlagsFromEnv(t *testing.T) {
	t.Setenv("LOGFLAGS", "shortfile, longfile,unknown")
	if flags := flagsFromEnv(); flags != LogFlagShortFile|LogFlagLongFile {
		t.Fatalf("flagsFromEnv: got %b", flags)
	}
	t.Setenv("LOGFLAGS", "")
	if flags := flagsFromEnv(); flags != 0 {
		t.Fatalf("flagsFromEnv: got %b with LOGFLAGS unset", flags)
	}
}

func TestShortFileFlag(t *testing.T) {
	backend := NewBackendWithFlags(LogFlagShortFile)
	writer := &bufferCloser{}
	if err := backend.AddLogWriter(writer, LevelInfo); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %+v", err)
	}
	log := backend.Logger("TEST")
	log.SetLevel(LevelInfo)
	log.Infof("located")
	backend.Close()

	if !strings.Contains(writer.String(), "TEST logger_test.go:") {
		t.Errorf("callsite missing from %q", writer.String())
	}
}
