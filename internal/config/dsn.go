package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/repository/db"
)

// defaultPorts per engine when DB_PORT is empty
var defaultPorts = map[db.DatabaseType]string{
	db.MySQL:      "3306",
	db.PostgreSQL: "5432",
}

// BuildDSN assembles a connection string from discrete settings.
// Construit la chaîne de connexion à partir des paramètres.
func BuildDSN(dbType db.DatabaseType, c DatabaseConfig) (string, error) {
	port := c.Port
	if port == "" {
		port = defaultPorts[dbType]
	}

	switch dbType {
	case db.MySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, port)
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.MultiStatements = true // golang-migrate runs whole files
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	case db.PostgreSQL:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   net.JoinHostPort(c.Host, port),
			Path:   "/" + c.Name,
		}
		q := url.Values{}
		q.Set("sslmode", "disable")
		q.Set("timezone", "UTC")
		u.RawQuery = q.Encode()
		return u.String(), nil
	case db.SQLite:
		name := c.Name
		if name == "" {
			name = "kame_daay"
		}
		return db.SQLiteDSN(name + ".db"), nil
	}
	return "", fmt.Errorf("unsupported database type: %s", dbType)
}
