package browse

import (
	"net/http"
	"time"
)

const (
	_defaultUserAgent     = "faresweep/1.0"
	_defaultMaxSnapshot   = 24000
	_defaultMaxIterations = 8
	_defaultHTTPTimeout   = 30 * time.Second
)

type Options struct {
	httpClient    *http.Client
	userAgent     string
	maxSnapshot   int
	maxIterations int
	temperature   float32
}

type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		httpClient:    &http.Client{Timeout: _defaultHTTPTimeout},
		userAgent:     _defaultUserAgent,
		maxSnapshot:   _defaultMaxSnapshot,
		maxIterations: _defaultMaxIterations,
	}
}

// WithHTTPClient passes a custom http client to the session.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent on every fetch.
func WithUserAgent(userAgent string) Option {
	return func(opts *Options) {
		opts.userAgent = userAgent
	}
}

// WithMaxSnapshot bounds how many bytes of page text are handed to the
// model per call.
func WithMaxSnapshot(maxSnapshot int) Option {
	return func(opts *Options) {
		opts.maxSnapshot = maxSnapshot
	}
}

// WithMaxIterations bounds the autonomous task loop.
func WithMaxIterations(maxIterations int) Option {
	return func(opts *Options) {
		opts.maxIterations = maxIterations
	}
}

// WithTemperature sets the sampling temperature for every grounding and
// extraction call.
func WithTemperature(temperature float32) Option {
	return func(opts *Options) {
		opts.temperature = temperature
	}
}
