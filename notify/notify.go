// Package notify is the user-facing message sink. The ledger core
// never calls it; the CLI layer reports each accepted or rejected
// operation exactly once.
package notify

import "log/slog"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Sink delivers a fire-and-forget message to the user.
type Sink interface {
	Notify(title, detail string, kind Kind)
}

// LogSink writes notifications through a slog.Logger.
type LogSink struct {
	Log *slog.Logger
}

func (s *LogSink) Notify(title, detail string, kind Kind) {
	switch kind {
	case Error:
		s.Log.Error(title, "detail", detail)
	default:
		s.Log.Info(title, "detail", detail, "kind", string(kind))
	}
}
