package output

import (
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileEnvVar names the variable that enables file logging
const LogFileEnvVar = "SITEPUB_LOG_FILE"

// GetLogFilePath returns the log file path from SITEPUB_LOG_FILE, or "" when
// file logging is disabled.
func GetLogFilePath() string {
	return os.Getenv(LogFileEnvVar)
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,  // megabytes
		MaxBackups: 2,  // old files kept
		MaxAge:     30, // days
		Compress:   false,
	}

	if maxSize, ok := positiveEnvInt("SITEPUB_LOG_MAX_SIZE", false); ok {
		config.MaxSize = maxSize
	}
	if maxBackups, ok := positiveEnvInt("SITEPUB_LOG_MAX_BACKUPS", true); ok {
		config.MaxBackups = maxBackups
	}
	if maxAge, ok := positiveEnvInt("SITEPUB_LOG_MAX_AGE", false); ok {
		config.MaxAge = maxAge
	}

	return config
}

func positiveEnvInt(key string, allowZero bool) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return 0, false
	}
	return n, true
}
