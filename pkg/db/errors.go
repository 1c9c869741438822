package db

import "errors"

var (
	ErrParseConfig       = errors.New("db: failed to parse connection string")
	ErrConnect           = errors.New("db: failed to connect")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrate           = errors.New("db: failed to apply migrations")
	ErrBeginTx           = errors.New("db: failed to begin transaction")
)
