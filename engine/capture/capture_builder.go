package capture

import "log/slog"

// SessionBuilderOption is a functional option for configuring a Session.
type SessionBuilderOption func(*session)

// WithLogger sets the logger used for capture diagnostics.
//
// Parameters:
//   - l: the logger (nil keeps the default component logger)
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithLogger(l *slog.Logger) SessionBuilderOption {
	return func(s *session) {
		s.log = l
	}
}
