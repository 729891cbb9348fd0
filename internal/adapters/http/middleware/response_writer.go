// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// Every route runs:
//
//	AppContext → Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout
//
// and the lists and drag routes add Session before the handler. Each
// middleware is a func(http.Handler) http.Handler mounted with chi's Use.
package middleware

import "net/http"

// statusRecorder remembers what a handler sent. status stays 0 until the
// response has started.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func recordStatus(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status != 0 {
		return
	}
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Status is the status sent, or 200 for a handler that wrote nothing.
func (sr *statusRecorder) Status() int {
	if sr.status == 0 {
		return http.StatusOK
	}
	return sr.status
}

func (sr *statusRecorder) started() bool { return sr.status != 0 }

// Unwrap lets http.ResponseController reach Flush and Hijack.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }
