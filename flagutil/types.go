// Package flagutil provides flag.Value implementations for types the
// standard flag package has no native support for.
package flagutil

import "github.com/coreos/gzinflate/capnslog"

// LogLevelFlag parses a capnslog level name or numeric code (as accepted by
// capnslog.ParseLevel) into a capnslog.LogLevel. This type implements the
// flag.Value interface, so it can back a CLI's -log-level flag directly.
type LogLevelFlag struct {
	val capnslog.LogLevel
	set bool
}

// Level returns the parsed level, or capnslog.INFO if Set was never called.
func (f *LogLevelFlag) Level() capnslog.LogLevel {
	if !f.set {
		return capnslog.INFO
	}
	return f.val
}

func (f *LogLevelFlag) Set(v string) error {
	l, err := capnslog.ParseLevel(v)
	if err != nil {
		return err
	}
	f.val = l
	f.set = true
	return nil
}

func (f *LogLevelFlag) String() string {
	if !f.set {
		return capnslog.INFO.Char()
	}
	return f.val.Char()
}
