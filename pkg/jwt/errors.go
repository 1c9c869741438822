package jwt

import "errors"

var (
	ErrMissingSecret    = errors.New("jwt: signing secret is empty")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrTokenNotYetValid = errors.New("jwt: token not valid yet")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrInvalidClaims    = errors.New("jwt: claims must embed jwt.StandardClaims")
)
