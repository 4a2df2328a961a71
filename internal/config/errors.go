package config

import "errors"

var (
	// ErrInvalidConfig reports a setting outside its allowed values.
	ErrInvalidConfig = errors.New("invalid braincap config")
	// ErrLoadConfig reports an unreadable or undecodable config file or
	// environment.
	ErrLoadConfig = errors.New("cannot load braincap config")
)
