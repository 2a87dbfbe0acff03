package config

import (
	"fmt"
	"strings"
)

type StorageBackend string

const (
	StorageCookie StorageBackend = "cookie"
	StorageRedis  StorageBackend = "redis"
)

// StorageConfig selects where the browser-scoped session values live.
type StorageConfig interface {
	GetStorageBackend() StorageBackend
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Storage struct {
	s settings
}

var _ StorageConfig = Storage{}

func (st Storage) GetStorageBackend() StorageBackend {
	if st.s.StorageBackend == "" {
		return StorageCookie
	}
	return StorageBackend(strings.ToLower(st.s.StorageBackend))
}

func (st Storage) GetRedisAddr() string {
	return st.s.RedisAddr
}

func (st Storage) GetRedisPassword() string {
	return st.s.RedisPassword
}

func (st Storage) GetRedisDB() int {
	return st.s.RedisDB
}

func (st Storage) validate(envName string) error {
	switch st.GetStorageBackend() {
	case StorageCookie:
		if st.s.CookieSecret == "" && envName != "DEV" {
			return fmt.Errorf("[config] COOKIE_SECRET is required when STORAGE_BACKEND=cookie outside DEV")
		}
		if st.s.CookieSecret != "" && len(st.s.CookieSecret) < 16 {
			return fmt.Errorf("[config] COOKIE_SECRET must be at least 16 characters")
		}
	case StorageRedis:
		if st.s.RedisAddr == "" {
			return fmt.Errorf("[config] REDIS_ADDR is required when STORAGE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("[config] unknown STORAGE_BACKEND %q", st.s.StorageBackend)
	}
	return nil
}
