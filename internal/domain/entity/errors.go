package entity

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSmartData = errors.New("invalid smart data")
)
