package types

import (
	"errors"
	"net/url"
	"time"
)

// Config holds the connection parameters for a Session.
type Config struct {
	APIURL    string        `json:"api_url" yaml:"api_url"`
	Token     string        `json:"token" yaml:"token"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
}

// Defaults applied by WithDefaults.
const (
	DefaultAPIURL  = "https://api.box.com/2.0"
	DefaultTimeout = 30 * time.Second
)

// Config validation errors.
var (
	ErrAPIURLEmpty    = errors.New("api url must not be empty")
	ErrAPIURLInvalid  = errors.New("api url must be an absolute http or https url")
	ErrTimeoutInvalid = errors.New("timeout must not be negative")
)

// WithDefaults returns a copy of c with empty APIURL and zero Timeout
// replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty Token is valid; requests are then
// sent without an Authorization header.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrAPIURLEmpty
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrAPIURLInvalid
	}
	if c.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	return nil
}
