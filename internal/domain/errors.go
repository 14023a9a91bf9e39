package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvoiceSaveFailed  = errors.New("saving extracted invoice failed")
)
