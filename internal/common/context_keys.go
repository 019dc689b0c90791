// File: internal/common/context_keys.go
package common

const (
	// SessionIDHeader carries the browser session id for non-cookie clients.
	SessionIDHeader = "X-Session-ID"
	// SessionIDKey is the context key for the resolved session id
	SessionIDKey = "sessionID"
	// SessionKey is the context key for the *session.Session loaded by RequireAuth
	SessionKey = "session"
	// LoggerKey is the context key for a request-scoped *zap.Logger
	LoggerKey = "logger"
)
