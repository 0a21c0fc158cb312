package models

import "errors"

var (
	// ErrInvalidInput covers a bad or missing URL and an empty question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyContent means a crawl run produced no usable text.
	ErrEmptyContent = errors.New("crawl produced no text content")

	// ErrMissingCredential means a required provider credential is absent.
	ErrMissingCredential = errors.New("missing embedding credential")

	// ErrNotReady means chat was attempted before a site was prepared.
	ErrNotReady = errors.New("no site index is loaded")
)
