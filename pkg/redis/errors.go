package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid REDIS_URL")
	ErrRedisNotReady                = errors.New("redis: server not ready before connect timeout")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
)
