package services

import "errors"

var (
	ErrBadCredentials      = errors.New("services: incorrect email or password")
	ErrEmailTaken          = errors.New("services: email already registered")
	ErrInvalidRefreshToken = errors.New("services: refresh token is invalid or revoked")
	ErrUserNotFound        = errors.New("services: user not found")
	ErrAdminRole           = errors.New("services: admin access level cannot be changed")
	ErrArticleNotFound     = errors.New("services: article not found")
	ErrReportNotFound      = errors.New("services: report not found")
)
