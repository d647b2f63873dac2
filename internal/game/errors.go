package game

import "errors"

var (
	ErrInsufficientGold = errors.New("not enough gold")
	ErrFeatureLocked    = errors.New("feature not unlocked")
	ErrCritCapped       = errors.New("crit chance at maximum")
	ErrUnknownUpgrade   = errors.New("unknown upgrade kind")
	ErrNoTarget         = errors.New("no living enemy")
)
