package trailshift

import "log/slog"

type options struct {
	actor  string
	logger *slog.Logger
}

// Option configures Analyze.
type Option func(*options)

// WithActor restricts the result to one actor id: an IAM user name or an
// assumed-role session name. Empty means every actor.
func WithActor(actor string) Option {
	return func(o *options) {
		o.actor = actor
	}
}

// WithLogger traces every per-event decision to l at debug level.
// Malformed records are reported at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
