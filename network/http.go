package network

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sisu-network/lib/log"
)

const (
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 500 * time.Millisecond
	DefaultRetryWaitMax = 5 * time.Second
)

// StatusError is returned when the remote answers with a non 2xx status.
type StatusError struct {
	Code int
	Body []byte
}

func NewStatusError(code int, body []byte) error {
	return &StatusError{Code: code, Body: body}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Code, string(e.Body))
}

//go:generate mockgen -source network/http.go -destination=tests/mock/network/http.go -package=mock
type Http interface {
	Get(req *http.Request) ([]byte, error)
	Post(req *http.Request) ([]byte, error)
}

type DefaultHttp struct {
	client *retryablehttp.Client
}

func NewHttp() Http {
	client := retryablehttp.NewClient()
	client.RetryMax = DefaultRetryMax
	client.RetryWaitMin = DefaultRetryWaitMin
	client.RetryWaitMax = DefaultRetryWaitMax
	client.Logger = &leveledLogger{}

	return &DefaultHttp{
		client: client,
	}
}

func (d *DefaultHttp) Get(req *http.Request) ([]byte, error) {
	req.Method = http.MethodGet
	return d.do(req)
}

func (d *DefaultHttp) Post(req *http.Request) ([]byte, error) {
	req.Method = http.MethodPost
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return d.do(req)
}

func (d *DefaultHttp) do(req *http.Request) ([]byte, error) {
	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(retryReq)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewStatusError(resp.StatusCode, buf)
	}

	return buf, nil
}

// leveledLogger routes retryablehttp logs into our logger.
type leveledLogger struct{}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error(append([]interface{}{msg}, keysAndValues...)...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Verbose(append([]interface{}{msg}, keysAndValues...)...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug(append([]interface{}{msg}, keysAndValues...)...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn(append([]interface{}{msg}, keysAndValues...)...)
}
