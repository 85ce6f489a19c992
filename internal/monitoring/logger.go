// Package monitoring provides the diagnostic logger shared by the migration
// engines. Kirchhoff, Stolt and the phase-shift recursion all run for
// seconds to minutes on a full radargram, and the original tool reported
// progress by printing milestones as it went; this package lets the Go
// port do the same without hard-wiring every engine to log.Printf.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Progressf logs via Logf only when i is a multiple of every, so long
// per-frequency or per-trace loops don't flood the log. every <= 0 logs
// unconditionally.
func Progressf(i, every int, format string, v ...interface{}) {
	if every > 0 && i%every != 0 {
		return
	}
	Logf(format, v...)
}
