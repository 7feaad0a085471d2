package repository

import (
	"database/sql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// DatabaseFactory must be implemented by each database package / Doit être implémenté par chaque package de BD
// Adding a repository here forces every engine package to provide it.
type DatabaseFactory interface {
	// Dialect returns the engine specifics / Retourne les spécificités du moteur
	Dialect() db.Dialect

	// NewUserRepository creates user repository / Crée le repository utilisateur
	NewUserRepository(conn *sql.DB) ports.UserRepository

	// NewRecordStore creates the synchronized record store / Crée le store d'enregistrements
	NewRecordStore(conn *sql.DB) ports.RecordStore
}
