package websocket

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingAgency = errors.New("missing agency id")
)
