package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport wraps next so every outbound request records duration and count.
// A nil next means http.DefaultTransport.
func (r *Recorder) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)

		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		r.httpRequestDuration.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())
		r.httpRequestsTotal.WithLabelValues(req.Method, status).Inc()

		return resp, err
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
