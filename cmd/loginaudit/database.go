package main

import (
	"database/sql"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Symantec/sql-login-validation/lib/metrics"
	"github.com/Symantec/sql-login-validation/lib/reconcile"
)

const serverPrincipalsQuery = `SELECT name, type, sid, is_disabled
  FROM sys.server_principals
  WHERE type IN ('U', 'G')
  ORDER BY principal_id`

// snapshot tables hold exported sys.server_principals rows so an audit
// can run against a warehouse copy instead of a live instance
const snapshotSchemaSqlite = `create table if not exists server_principals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  server text not null, name text not null, type text not null,
  sid blob not null, is_disabled boolean not null);`

const snapshotSchemaPostgres = `CREATE TABLE IF NOT EXISTS server_principals (
  id SERIAL PRIMARY KEY,
  server text NOT NULL, name text NOT NULL, type text NOT NULL,
  sid bytea NOT NULL, is_disabled boolean NOT NULL);`

const snapshotPrincipalsQuery = `SELECT server, name, type, sid, is_disabled
  FROM server_principals ORDER BY id`

type principalSource struct {
	dbType string
	db     *sql.DB
	server string
}

// openPrincipalSource connects to one target, the storage URL scheme
// selects between a live SQL Server instance and a snapshot database.
func openPrincipalSource(storageURL string) (*principalSource, error) {
	splitString := strings.SplitN(storageURL, ":", 2)
	if len(splitString) < 2 {
		log.Print("invalid storage url string")
		err := errors.New("Bad storage url string")
		return nil, err
	}
	switch splitString[0] {
	case "sqlserver":
		return openSourceSQLServer(storageURL)
	case "postgresql":
		return openSourcePostgres(storageURL)
	case "sqlite":
		return openSourceSQlite(splitString[1])
	default:
		log.Print("invalid storage url string")
		err := errors.New("Bad storage url string")
		return nil, err
	}
}

func openSourceSQLServer(storageURL string) (*principalSource, error) {
	parsedURL, err := url.Parse(storageURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlserver", storageURL)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &principalSource{dbType: "sqlserver", db: db, server: parsedURL.Host}, nil
}

func openSourcePostgres(storageURL string) (*principalSource, error) {
	parsedURL, err := url.Parse(storageURL)
	if err != nil {
		return nil, err
	}
	// lib/pq wants the postgres:// spelling
	parsedURL.Scheme = "postgres"
	db, err := sql.Open("postgres", parsedURL.String())
	if err != nil {
		log.Println(err)
		return nil, err
	}
	if _, err := db.Exec(snapshotSchemaPostgres); err != nil {
		db.Close()
		return nil, err
	}
	return &principalSource{dbType: "postgres", db: db, server: parsedURL.Host}, nil
}

func openSourceSQlite(db string) (*principalSource, error) {
	sqliteDB, err := sql.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	if _, err := sqliteDB.Exec(snapshotSchemaSqlite); err != nil {
		log.Printf("init sqlite3 err: %s", err)
		sqliteDB.Close()
		return nil, err
	}
	return &principalSource{dbType: "sqlite", db: sqliteDB, server: db}, nil
}

func (s *principalSource) Close() error {
	return s.db.Close()
}

// listPrincipals reads the directory-relevant principal rows. Live
// targets are pre-filtered to Windows logins and groups by the query,
// snapshot rows come back as exported.
func (s *principalSource) listPrincipals() ([]reconcile.SecurityPrincipal, error) {
	query := snapshotPrincipalsQuery
	if s.dbType == "sqlserver" {
		query = serverPrincipalsQuery
	}
	start := time.Now()
	rows, err := s.db.Query(query)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	defer rows.Close()
	metrics.MetricLogExternalServiceDuration("storage", time.Since(start))

	var principals []reconcile.SecurityPrincipal
	for rows.Next() {
		var principal reconcile.SecurityPrincipal
		var principalType string
		if s.dbType == "sqlserver" {
			principal.Server = s.server
			err = rows.Scan(&principal.Name, &principalType, &principal.SID, &principal.DisabledOnServer)
		} else {
			err = rows.Scan(&principal.Server, &principal.Name, &principalType, &principal.SID, &principal.DisabledOnServer)
		}
		if err != nil {
			log.Println(err)
			return nil, err
		}
		principal.Type = reconcile.PrincipalType(strings.TrimSpace(principalType))
		principals = append(principals, principal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return principals, nil
}
