package logging

import (
	"time"
)

// TimingContext holds the start of a Start/End measurement
type TimingContext struct {
	name      string
	startTime time.Time
	logger    *Logger
}

// Time runs fn and logs how long it took at debug level.
//
//	logging.Time("subscribe serviceaccounts", func() {
//	    watch, err = source.Subscribe(ctx, q)
//	})
func Time(name string, fn func()) {
	Get().Time(name, fn)
}

// Time is the logger-scoped variant of the package Time helper.
func (l *Logger) Time(name string, fn func()) {
	if !l.IsEnabled() {
		fn()
		return
	}
	start := time.Now()
	fn()
	l.logDuration(name, time.Since(start))
}

// Start begins a measurement that End or EndWithCount completes.
func Start(name string) TimingContext {
	return Get().Start(name)
}

// Start begins a measurement logged through l.
func (l *Logger) Start(name string) TimingContext {
	return TimingContext{name: name, startTime: time.Now(), logger: l}
}

// End logs the duration since Start.
func End(ctx TimingContext) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	ctx.logger.logDuration(ctx.name, time.Since(ctx.startTime))
}

// EndWithCount logs the duration since Start along with an item count.
func EndWithCount(ctx TimingContext, count int) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	ctx.logger.logDuration(ctx.name, time.Since(ctx.startTime), "count", count)
}

func (l *Logger) logDuration(name string, d time.Duration, extra ...any) {
	args := append([]any{"duration", d.String(), "ms", d.Milliseconds()}, extra...)
	l.Debug(name, args...)
}
