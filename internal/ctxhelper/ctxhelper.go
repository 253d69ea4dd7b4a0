// Package ctxhelper provides helper functions for working with the context
package ctxhelper

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var (
	// KeyLogger is the context key for storing the logger in the context
	KeyLogger = ctxKey("logger")
	// KeyCSRFToken is the context key for storing the CSRF token the browser sent along with the current call
	KeyCSRFToken = ctxKey("csrfToken")
)

// internal context key
type ctxKey string

// Logger returns the logger from the current context. If no logger is available, it panics
func Logger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(KeyLogger).(*logrus.Entry)
	if ok {
		return logger
	}
	panic("No logger in context")
}

// CSRFToken returns the CSRF token of the current call or the empty string if the caller did not send any
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(KeyCSRFToken).(string)
	return token
}
