package catalog

import "errors"

var (
	ErrModelNotFound       = errors.New("model not found")
	ErrDistributorNotFound = errors.New("distributor not found")
)
