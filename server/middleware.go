package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// statusRecorder - captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// accessLog - logs every request with a generated request id, the resulting
// status code and the handling duration
func accessLog(logInfo *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(recorder, r)

		logInfo.Printf("[%s] %s %s -> %d (%s)",
			requestID, r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}
