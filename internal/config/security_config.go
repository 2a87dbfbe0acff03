package config

import (
	"strings"
	"time"
)

type SecurityConfig interface {
	GetCookieSecret() string
	GetCookiePrefix() string
	GetSessionMaxAge() time.Duration
	GetSecureCookies() bool
}

type Security struct {
	s settings
}

var _ SecurityConfig = Security{}

// devCookieSecret is only accepted when ENV=DEV.
const devCookieSecret = "bursary-portal-development-secret"

func (sc Security) GetCookieSecret() string {
	if sc.s.CookieSecret == "" {
		return devCookieSecret
	}
	return sc.s.CookieSecret
}

func (sc Security) GetCookiePrefix() string {
	return sc.s.CookiePrefix
}

func (sc Security) GetSessionMaxAge() time.Duration {
	if sc.s.SessionMaxAge <= 0 {
		return 30 * 24 * time.Hour
	}
	return sc.s.SessionMaxAge
}

// GetSecureCookies forces the Secure flag when the portal is served over https.
func (sc Security) GetSecureCookies() bool {
	return strings.HasPrefix(sc.s.BaseURL, "https://")
}
