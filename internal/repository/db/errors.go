package db

import "errors"

// Common database errors, returned by every dialect / Erreurs communes à tous les dialectes
var (
	ErrNoRecord            = errors.New("no matching record found")
	ErrDup                 = errors.New("record already exists")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
	ErrOwnershipConflict   = errors.New("record id belongs to another user")
)
