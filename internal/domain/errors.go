package domain

import "errors"

var ErrNotFound = errors.New("not found")
var ErrStorage = errors.New("storage error")
var ErrValidation = errors.New("validation error")
