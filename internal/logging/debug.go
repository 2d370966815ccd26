package logging

import (
	"os"
)

// DebugEnvVar forces debug logging when set to any non-empty value.
const DebugEnvVar = "TASKBOARD_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TASKBOARD_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debugf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(msg interface{}, keyvals ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug(msg, keyvals...)
	}
}
