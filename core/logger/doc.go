// Package logger builds the zap logger the rest of the service shares.
//
// Level and format come from config: console encoding for development,
// JSON for production. Unknown levels fall back to info rather than
// failing startup.
//
// WithRayID attaches the request's ray id (set by the rayid middleware)
// to a logger so every entry written while handling that request can be
// correlated:
//
//	l := logger.WithRayID(log, c)
//	l.Error("handler failed", zap.Error(err))
package logger
