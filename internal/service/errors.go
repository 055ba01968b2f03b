package service

import "errors"

var (
	ErrSessionNotFound       = errors.New("chat session not found")
	ErrSessionBusy           = errors.New("chat session is waiting for a reply")
	ErrEmptyMessage          = errors.New("message is empty")
	ErrFAQNotFound           = errors.New("faq not found")
	ErrStoreUnavailable      = errors.New("store is not configured")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEscalationUnavailable = errors.New("no escalation channel is configured")
)
