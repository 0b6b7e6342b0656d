package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrCardNotFound      = errors.New("card not found")
	ErrRateLimitExceeded = errors.New("remote API rate limit budget exhausted")
)
