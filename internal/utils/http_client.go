package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so that adapters can share one configured
// transport.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with baseURL and timeout applied. Idempotent
// GETs are retried twice on transport errors.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && r != nil && r.Request != nil && r.Request.Method == "GET"
		})

	return &HTTPClient{Client: client}
}
