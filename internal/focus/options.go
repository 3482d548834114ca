package focus

import (
	"context"
	"time"

	"github.com/dshills/focustrack/internal/logging"
)

// Default timings.
const (
	DefaultThrottleInterval = 100 * time.Millisecond
	DefaultCharInsertDelay  = 20 * time.Millisecond
	DefaultTextInsertDelay  = 20 * time.Millisecond
	DefaultOrientationDelay = 500 * time.Millisecond
	DefaultHitPollInterval  = 10 * time.Millisecond
	DefaultHitMaxDuration   = 5 * time.Second
)

type options struct {
	throttleInterval time.Duration
	charInsertDelay  time.Duration
	textInsertDelay  time.Duration
	orientationDelay time.Duration
	hitPollInterval  time.Duration
	hitMaxDuration   time.Duration

	ctx          context.Context
	logger       logging.Logger
	errorHandler func(error)
}

func defaultOptions() options {
	return options{
		throttleInterval: DefaultThrottleInterval,
		charInsertDelay:  DefaultCharInsertDelay,
		textInsertDelay:  DefaultTextInsertDelay,
		orientationDelay: DefaultOrientationDelay,
		hitPollInterval:  DefaultHitPollInterval,
		hitMaxDuration:   DefaultHitMaxDuration,
		ctx:              context.Background(),
		logger:           logging.Nop(),
	}
}

// Option configures a Tracker.
type Option func(*options)

// WithThrottleInterval sets the minimum time between selection-change
// handler runs.
func WithThrottleInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.throttleInterval = d
		}
	}
}

// WithCharInsertDelay sets how long a single character insert waits before
// it counts as a selection change.
func WithCharInsertDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.charInsertDelay = d
		}
	}
}

// WithTextInsertDelay sets how long inserts wait before the current
// editable is captured.
func WithTextInsertDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.textInsertDelay = d
		}
	}
}

// WithOrientationDelay sets how long an orientation change is held back.
func WithOrientationDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.orientationDelay = d
		}
	}
}

// WithHitPollInterval sets the poll interval used after a pointer hit.
func WithHitPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.hitPollInterval = d
		}
	}
}

// WithHitMaxDuration bounds the poll started by a pointer hit. Zero polls
// until success or Close.
func WithHitMaxDuration(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.hitMaxDuration = d
		}
	}
}

// WithContext sets the context passed to the bus on publish.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler sets a callback for internal consistency errors. The
// tracker keeps running after reporting them.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
