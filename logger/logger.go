// Package logger provides structured logging for the pocket-edition world
// storage engine.
//
// The logger supports five severity levels (TRACE, DEBUG, INFO, WARN, ERROR)
// and annotates every line with the calling function, file and line number.
// Level checks use an atomic int32 so that disabled levels cost almost
// nothing on the hot path (chunk load/save).
//
// Log line format:
//
//	YYYY/MM/DD HH:MM:SS.ssssss [PID] [LEVEL] function.file:line: message
package logger

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level is the severity of a log message.
type Level int32

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var (
	currentLevel atomic.Int32

	traceSubsystems = make(map[string]bool)
	traceMutex      sync.RWMutex

	processID = os.Getpid()
	std       *log.Logger
)

func init() {
	std = log.New(os.Stdout, "", 0)
	currentLevel.Store(int32(INFO))
}

// SetLevel sets the minimum level that will be emitted. Accepts
// "trace"/"debug"/"info"/"warn"/"error", case-insensitively.
func SetLevel(level string) error {
	switch strings.ToUpper(level) {
	case "TRACE":
		currentLevel.Store(int32(TRACE))
	case "DEBUG":
		currentLevel.Store(int32(DEBUG))
	case "INFO":
		currentLevel.Store(int32(INFO))
	case "WARN":
		currentLevel.Store(int32(WARN))
	case "ERROR":
		currentLevel.Store(int32(ERROR))
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}

// GetLevel returns the current minimum level name.
func GetLevel() string {
	return levelNames[Level(currentLevel.Load())]
}

// EnableTrace turns on TRACE-level output for the named subsystems (e.g.
// "store", "chunk", "world"). TRACE lines for other subsystems stay
// suppressed even when the global level is TRACE.
func EnableTrace(subsystems ...string) {
	traceMutex.Lock()
	defer traceMutex.Unlock()
	for _, s := range subsystems {
		traceSubsystems[s] = true
	}
}

func isTraceEnabled(subsystem string) bool {
	traceMutex.RLock()
	defer traceMutex.RUnlock()
	return traceSubsystems[subsystem]
}

func formatMessage(level Level, skip int, format string, args ...interface{}) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		file = "unknown"
		line = 0
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	if idx := strings.LastIndex(file, ".go"); idx != -1 {
		file = file[:idx]
	}

	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		full := fn.Name()
		if idx := strings.LastIndex(full, "."); idx != -1 {
			funcName = full[idx+1:]
		}
	}

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006/01/02 15:04:05.000000")
	return fmt.Sprintf("%s [%d] [%s] %s.%s:%d: %s",
		timestamp, processID, levelNames[level], funcName, file, line, msg)
}

func logMessage(level Level, skip int, format string, args ...interface{}) {
	if level < Level(currentLevel.Load()) {
		return
	}
	std.Println(formatMessage(level, skip, format, args...))
}

// TraceIf logs a TRACE message only when subsystem tracing is enabled.
func TraceIf(subsystem string, format string, args ...interface{}) {
	if Level(currentLevel.Load()) > TRACE || !isTraceEnabled(subsystem) {
		return
	}
	logMessage(TRACE, 3, "[%s] %s", subsystem, fmt.Sprintf(format, args...))
}

func Trace(format string, args ...interface{}) { logMessage(TRACE, 3, format, args...) }
func Debug(format string, args ...interface{}) { logMessage(DEBUG, 3, format, args...) }
func Info(format string, args ...interface{})  { logMessage(INFO, 3, format, args...) }
func Warn(format string, args ...interface{})  { logMessage(WARN, 3, format, args...) }
func Error(format string, args ...interface{}) { logMessage(ERROR, 3, format, args...) }

// Fatal logs at ERROR and terminates the process.
func Fatal(format string, args ...interface{}) {
	std.Println(formatMessage(ERROR, 2, format, args...))
	os.Exit(1)
}

// Configure applies POCKETWORLD_LOG_LEVEL and POCKETWORLD_TRACE_SUBSYSTEMS
// from the environment. Intended to be called once at process startup.
func Configure() {
	if level := os.Getenv("POCKETWORLD_LOG_LEVEL"); level != "" {
		_ = SetLevel(level)
	}
	if trace := os.Getenv("POCKETWORLD_TRACE_SUBSYSTEMS"); trace != "" {
		subs := strings.Split(trace, ",")
		for i, s := range subs {
			subs[i] = strings.TrimSpace(s)
		}
		EnableTrace(subs...)
	}
}
