// Package logger provides file-backed logging with automatic rotation.
// Logs go to ~/.scrublog/logs/scrublog.log so hook-mode runs, which must
// keep stdout clean for the hook response, still leave a trail.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/scrublog/scrublog/pkg/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName = "scrublog.log"
	maxSizeMB   = 1    // 1MB per file
	maxAgeDays  = 14   // keep 2 weeks
	maxBackups  = 20   // max old log files
	compressOld = true // compress rotated logs
)

// LevelEnv overrides the default log level (DEBUG, INFO, WARN, ERROR).
const LevelEnv = "SCRUBLOG_LOG_LEVEL"

// Level represents the log level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, defaulting to INFO.
func ParseLevel(name string) Level {
	switch name {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger manages logging to file and optionally stderr
type Logger struct {
	file       io.WriteCloser
	logger     *log.Logger
	logPath    string
	level      Level
	mu         sync.Mutex
	alsoStderr bool
}

var (
	instance *Logger
	once     sync.Once
)

// Init initializes the logger (creates the log directory and file)
func Init() error {
	var err error
	once.Do(func() {
		dataDir, dirErr := config.GetScrublogDir()
		if dirErr != nil {
			err = dirErr
			return
		}

		logDir := filepath.Join(dataDir, "logs")
		if mkdirErr := os.MkdirAll(logDir, 0755); mkdirErr != nil {
			err = fmt.Errorf("failed to create log directory: %w", mkdirErr)
			return
		}

		logPath := filepath.Join(logDir, logFileName)

		rotator := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSizeMB,
			MaxAge:     maxAgeDays,
			MaxBackups: maxBackups,
			Compress:   compressOld,
			LocalTime:  true,
		}

		instance = &Logger{
			file:       rotator,
			logger:     log.New(rotator, "", 0), // formatted manually
			logPath:    logPath,
			level:      ParseLevel(os.Getenv(LevelEnv)),
			alsoStderr: false,
		}
	})
	return err
}

// Get returns the logger instance (initializes if needed)
func Get() *Logger {
	if instance == nil {
		if err := Init(); err != nil {
			// Fallback to stderr-only logger
			instance = &Logger{
				logger:     log.New(os.Stderr, "", 0),
				level:      INFO,
				alsoStderr: true,
			}
		}
	}
	return instance
}

// Close closes the log file
func Close() error {
	if instance != nil && instance.file != nil {
		return instance.file.Close()
	}
	return nil
}

// Reset discards the singleton so the next Init picks up a new
// environment. Used by tests to isolate log directories.
func Reset() {
	if instance != nil && instance.file != nil {
		instance.file.Close()
	}
	instance = nil
	once = sync.Once{}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	return l.logPath
}

// log writes a log message at the specified level
func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("[%s] %s: %s\n", timestamp, level, message)

	if l.logger != nil {
		l.logger.Print(logLine)
	}

	if l.alsoStderr {
		fmt.Fprint(os.Stderr, logLine)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Package-level convenience functions
func Debug(format string, args ...interface{}) {
	Get().Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	Get().Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	Get().Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	Get().Error(format, args...)
}

// InfoPrint logs at INFO and also writes the message to stderr for the user
func InfoPrint(format string, args ...interface{}) {
	Get().Info(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// ErrorPrint logs at ERROR and also writes the message to stderr for the user
func ErrorPrint(format string, args ...interface{}) {
	Get().Error(format, args...)
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
