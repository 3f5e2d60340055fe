package directory

import "errors"

var ErrNotFound = errors.New("expert not found")
