package config

import (
	"strings"
	"time"
)

// APIConfig describes how the portal reaches the remote bursary API.
type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type API struct {
	s settings
}

var _ APIConfig = API{}

func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(a.s.APIBaseURL, "/")
}

func (a API) GetAPITimeout() time.Duration {
	if a.s.APITimeout <= 0 {
		return 10 * time.Second
	}
	return a.s.APITimeout
}
