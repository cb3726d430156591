package http

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/http.go -package=mocks . IClient
type IClient interface {
	DoHTTPRequest(ctx context.Context, requestParam *RequestParam) error
}

// RequestParam describes one JSON request. Body may be an io.Reader (sent
// as-is) or any value, which is marshaled to JSON. A non-nil Response is
// unmarshaled from the reply body.
type RequestParam struct {
	RequestURI string
	Method     string
	Header     map[string]string
	Body       interface{}
	Response   interface{}

	// Timeout overrides the client default for this one request.
	Timeout time.Duration
}
