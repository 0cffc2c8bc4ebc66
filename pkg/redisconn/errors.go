package redisconn

import "errors"

var (
	ErrEmptyURL          = errors.New("redisconn: empty connection URL")
	ErrInvalidURL        = errors.New("redisconn: invalid connection URL")
	ErrConnectFailed     = errors.New("redisconn: failed to establish connection")
	ErrHealthcheckFailed = errors.New("redisconn: healthcheck failed")
)
