package repository

import (
	"database/sql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// NewSQLiteUser creates SQLite user repository for tests / Crée un repository utilisateur SQLite pour les tests
func NewSQLiteUser(conn *sql.DB) ports.UserRepository {
	return NewAdapter(conn, db.SQLite).UserRepository()
}

// NewSQLiteRecordStore creates SQLite record store for tests / Crée un store SQLite pour les tests
func NewSQLiteRecordStore(conn *sql.DB) ports.RecordStore {
	return NewAdapter(conn, db.SQLite).RecordStore()
}
