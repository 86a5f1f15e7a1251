package service

import "errors"

var (
	ErrInvalidPayload = errors.New("invalid request payload")
	ErrComposeFailed  = errors.New("failed to compose document")
	ErrQRUnavailable  = errors.New("qr code unavailable")
)
