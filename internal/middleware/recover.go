package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// PanicLogger is satisfied by *logging.StructuredLogger
type PanicLogger interface {
	Println(...interface{})
}

// Recover turns a handler panic into a 500 and logs it
func Recover(logger PanicLogger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger),
		handlers.PrintRecoveryStack(false),
	)
}
