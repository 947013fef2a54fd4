package repository

import "errors"

// ErrDuplicate is returned by Create when the row collides with an active
// appointment on the same doctor, date and time slot.
var ErrDuplicate = errors.New("duplicate active appointment")
