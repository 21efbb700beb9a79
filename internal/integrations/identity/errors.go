package identity

import "errors"

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("identity: missing token")

	// ErrInvalidToken возвращается для поддельного или испорченного токена
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrExpiredToken возвращается для просроченного токена
	ErrExpiredToken = errors.New("identity: token has expired")
)
