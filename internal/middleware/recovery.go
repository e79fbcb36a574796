package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

const internalErrorBody = `{"error":"internal server error"}` + "\n"

// Recoverer is a middleware that recovers from panics.
// It logs the panic with its stack and returns a 500 JSON error, unless the
// handler already sent its status line. With verbose set the stack is also
// printed to stderr.
func Recoverer(logger *slog.Logger, verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapResponseWriter(w)

			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				if verbose {
					debug.PrintStack()
				}

				if wrapped.wroteHeader {
					return
				}
				wrapped.Header().Set("Content-Type", "application/json")
				wrapped.WriteHeader(http.StatusInternalServerError)
				_, _ = wrapped.Write([]byte(internalErrorBody))
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
