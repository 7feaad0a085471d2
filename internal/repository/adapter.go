package repository

import (
	"database/sql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/ports"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/mysql"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/postgres"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/sqlite"
)

// Compile-time checks: every engine package satisfies DatabaseFactory
// Vérifications à la compilation : chaque package moteur satisfait DatabaseFactory
var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*mysql.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

// factoryRegistry holds all database factories / Registre de toutes les factories de BD
// No switch statements - just a map lookup / Pas de switch - juste une recherche dans la map
var factoryRegistry = map[db.DatabaseType]DatabaseFactory{
	db.SQLite:     &sqlite.Factory{},
	db.MySQL:      &mysql.Factory{},
	db.PostgreSQL: &postgres.Factory{},
}

// Adapter adapts database connection to repositories / Adapte la connexion BD vers les repositories
type Adapter struct {
	db      *sql.DB
	factory DatabaseFactory
}

// NewAdapter creates repository adapter / Crée l'adapteur de repositories
func NewAdapter(conn *sql.DB, dbType db.DatabaseType) *Adapter {
	factory := factoryRegistry[dbType]
	if factory == nil {
		factory = &sqlite.Factory{} // default fallback
	}

	return &Adapter{
		db:      conn,
		factory: factory,
	}
}

// Dialect returns the engine dialect / Retourne le dialecte du moteur
func (a *Adapter) Dialect() db.Dialect {
	return a.factory.Dialect()
}

// UserRepository returns appropriate user repository / Retourne le repository utilisateur approprié
func (a *Adapter) UserRepository() ports.UserRepository {
	return a.factory.NewUserRepository(a.db)
}

// RecordStore returns appropriate record store / Retourne le store d'enregistrements approprié
func (a *Adapter) RecordStore() ports.RecordStore {
	return a.factory.NewRecordStore(a.db)
}
