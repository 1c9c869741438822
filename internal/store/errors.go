package store

import "errors"

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: record already exists")
)
