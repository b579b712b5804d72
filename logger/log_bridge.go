package logger

import (
	"log"
	"strings"
)

// httpErrorWriter implements io.Writer so the standard library's http.Server
// can log through this package.
type httpErrorWriter struct{}

func (w *httpErrorWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}
	Error("worldapi: %s", msg)
	return len(p), nil
}

// HTTPServerErrorLog returns a *log.Logger suitable for http.Server.ErrorLog
// that routes lines through this package instead of directly to stderr.
func HTTPServerErrorLog() *log.Logger {
	return log.New(&httpErrorWriter{}, "", 0)
}
