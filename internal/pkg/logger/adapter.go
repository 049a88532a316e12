package logger

import "token_sale/internal/app/port"

// slogAdapter exposes the package logger through port.Logger so services
// stay free of a concrete logging dependency.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the package logger.
func NewSlogAdapter() port.Logger {
	return slogAdapter{}
}

func (slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }
