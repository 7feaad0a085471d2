package mysql

import (
	"database/sql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/sqlstore"
)

// Factory implements DatabaseFactory for MySQL / Implémente DatabaseFactory pour MySQL
// The compile-time check is in adapter.go to avoid import cycles
type Factory struct{}

// Dialect returns the MySQL dialect / Retourne le dialecte MySQL
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
