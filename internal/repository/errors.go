package repository

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Error kinds returned by the repositories. Callers match them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
	ErrBusy       = errors.New("database busy")
	ErrStorage    = errors.New("storage failure")
	ErrEmptyPatch = errors.New("no fields to update")
)

// classify maps a gorm/driver error onto one of the error kinds. The driver
// error text is kept for logs but its type does not leave the package.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNotFound, ErrConstraint, ErrBusy, ErrStorage, ErrEmptyPatch} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	kind := ErrStorage
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			kind = ErrConstraint
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			kind = ErrBusy
		}
	}
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}
