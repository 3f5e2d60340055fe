package admin

import "errors"

var (
	ErrForbidden       = errors.New("admin access required")
	ErrNotFound        = errors.New("expert profile not found")
	ErrAlreadyReviewed = errors.New("expert profile was already reviewed")
)
