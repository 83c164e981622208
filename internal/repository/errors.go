package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no live row.
	ErrNotFound = errors.New("record not found")

	// ErrNotPending is returned by a guarded status transition that lost the race.
	ErrNotPending = errors.New("change request is no longer pending")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
