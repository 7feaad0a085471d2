package sqlite

import (
	"database/sql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/sqlstore"
)

// Factory implements DatabaseFactory for SQLite / Implémente DatabaseFactory pour SQLite
// The compile-time check is in adapter.go to avoid import cycles
type Factory struct{}

// Dialect returns the SQLite dialect / Retourne le dialecte SQLite
func (f *Factory) Dialect() db.Dialect {
	return Dialect{}
}

// NewUserRepository creates user repository / Crée le repository utilisateur
func (f *Factory) NewUserRepository(conn *sql.DB) ports.UserRepository {
	return sqlstore.NewUserRepository(conn, Dialect{})
}

// NewRecordStore creates the synchronized record store / Crée le store d'enregistrements
func (f *Factory) NewRecordStore(conn *sql.DB) ports.RecordStore {
	return sqlstore.NewRecordStore(conn, Dialect{})
}
