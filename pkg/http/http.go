package http

import (
	"time"
)

// Http holds the HTTP server configuration.
type Http struct {
	Host            string
	Port            int
	ContextPath     string
	AccessLog       bool
	ExposeMetrics   bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration // minutes
	RefreshExpire  time.Duration // minutes
	RedisKeyPrefix string
}
