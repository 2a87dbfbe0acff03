package config

import (
	"strings"
)

type EnvVars struct {
	s settings
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.s.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.s.AppName
}

// GetBaseURL returns the public URL of the portal (e.g. "https://bursary.example.com").
func (e EnvVars) GetBaseURL() string {
	return strings.TrimRight(e.s.BaseURL, "/")
}

func (e EnvVars) GetEnv() string {
	if e.s.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.s.Env)
}
