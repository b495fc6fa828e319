package service

import "errors"

var (
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyCompleted  = errors.New("already_completed")
	ErrAlreadyOwned      = errors.New("already_owned")
	ErrNotClaimable      = errors.New("not_claimable")
	ErrInsufficientSeeds = errors.New("insufficient_seeds")
)
