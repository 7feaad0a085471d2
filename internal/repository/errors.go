package repository

import (
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/sqlite"
)

// Re-export storage errors so callers need a single import
var (
	ErrNoRecord            = db.ErrNoRecord
	ErrDup                 = db.ErrDup
	ErrForeignKeyViolation = db.ErrForeignKeyViolation
	ErrNotNullViolation    = db.ErrNotNullViolation
	ErrOwnershipConflict   = db.ErrOwnershipConflict

	// SQLite-specific errors from sqlite package
	ErrBusy   = sqlite.ErrBusy
	ErrLocked = sqlite.ErrLocked
)
