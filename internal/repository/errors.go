package repository

import "errors"

var (
	// ErrContentNotFound indicates the backend has no content for the URL
	ErrContentNotFound = errors.New("content not found")

	// ErrBackendUnavailable indicates the metadata backend could not serve
	// the request
	ErrBackendUnavailable = errors.New("metadata backend unavailable")
)
