package telegram

import (
	"log/slog"
	"sync"
	"time"
)

// TimePeriod carries a duration field that the Bot API expresses as integer
// seconds. Historically callers supplied such fields as plain second counts;
// the supported shape is time.Duration. Both build the same normalized value,
// but the value remembers which shape it came from so Value can reproduce it.
type TimePeriod struct {
	d      time.Duration
	legacy bool
	set    bool
}

// Period builds a TimePeriod from a duration. Sub-second precision is not
// representable on the wire and is truncated when encoding.
func Period(d time.Duration) TimePeriod {
	return TimePeriod{d: d, set: true}
}

// Seconds builds a TimePeriod from a plain second count.
//
// Deprecated: supply a time.Duration through Period instead. Values built
// here behave identically except that Value hands back an int64 and logs a
// deprecation warning on first use.
func Seconds(n int64) TimePeriod {
	return TimePeriod{d: time.Duration(n) * time.Second, legacy: true, set: true}
}

// IsZero reports whether the period was never supplied.
func (p TimePeriod) IsZero() bool {
	return !p.set
}

// Duration is the normalized view of the period.
func (p TimePeriod) Duration() time.Duration {
	return p.d
}

var legacySecondsWarning sync.Once

// Value reproduces the shape the period was supplied in: an int64 second
// count for values built with Seconds, a time.Duration otherwise. Reading a
// legacy value emits a one-time deprecation warning.
func (p TimePeriod) Value() any {
	if !p.set {
		return nil
	}
	if p.legacy {
		legacySecondsWarning.Do(func() {
			slog.Warn("plain integer seconds for duration fields are deprecated, use time.Duration")
		})
		return int64(p.d / time.Second)
	}
	return p.d
}

// wireSeconds is the encoded form, whole seconds.
func (p TimePeriod) wireSeconds() int64 {
	return int64(p.d / time.Second)
}
