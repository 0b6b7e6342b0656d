package config

import (
	"net/http"
	"time"
)

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	CDNOrigin string
}
