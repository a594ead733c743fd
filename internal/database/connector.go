// Package database opens SQL Server connections on behalf of individual
// callers. Every connection is made with the caller's own database login;
// no shared service account exists, so the server's permission system is the
// single source of authorisation.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	// SQL Server driver, registered as "sqlserver"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"

	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/config"
)

// Credentials is a caller-supplied database login. It is held in process
// memory only, for the lifetime of a session, and must never be logged or
// written to durable storage.
type Credentials struct {
	Username string
	Password string
}

// Connector hands out database connections for a given set of credentials.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (*sql.DB, error)
}

// SQLServerConnector builds per-caller connections to a single configured
// SQL Server instance.
type SQLServerConnector struct {
	config config.DatabaseConfig
}

var _ Connector = (*SQLServerConnector)(nil)

func NewSQLServerConnector(cfg config.DatabaseConfig) *SQLServerConnector {
	return &SQLServerConnector{config: cfg}
}

// Connect opens a connection using the supplied credentials and verifies it
// with a ping. The caller owns the returned handle and must close it.
func (c *SQLServerConnector) Connect(ctx context.Context, creds Credentials) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", c.dsn(creds))
	if err != nil {
		return nil, errors.Wrap(err, "[Connect] sql.Open")
	}

	// One caller, one connection: never let the pool grow behind our back.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[Connect] ping")
	}
	return db, nil
}

func (c *SQLServerConnector) dsn(creds Credentials) string {
	query := url.Values{}
	query.Set("database", c.config.GetDBName())
	query.Set("encrypt", fmt.Sprintf("%t", c.config.GetDBEncrypt()))
	query.Set("trustservercertificate", fmt.Sprintf("%t", c.config.GetDBTrustServerCertificate()))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(creds.Username, creds.Password),
		Host:     fmt.Sprintf("%s:%s", c.config.GetDBServer(), c.config.GetDBPort()),
		RawQuery: query.Encode(),
	}
	return u.String()
}
