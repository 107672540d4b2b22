package user

import "errors"

var ErrExternalIDTaken = errors.New("external identity is already linked to another user")
