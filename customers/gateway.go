// Package customers executes the allow-listed read queries of the gateway.
// Every call opens its own connection with the calling session's credentials
// and closes it before returning; connections are never shared between
// sessions or reused across requests.
package customers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
)

// DefaultListLimit caps the unfiltered listing. Search is uncapped.
const DefaultListLimit = 100

const projection = "no_, name, surname, addr1, addr2, pc, pb, formatted_phone, email"

// searchColumns is the closed set of columns a search may target. The column
// name is only ever taken from this set, never from request text, so no
// caller-controlled identifier reaches the SQL string.
var searchColumns = map[string]struct{}{
	"no_":             {},
	"name":            {},
	"surname":         {},
	"addr1":           {},
	"addr2":           {},
	"pc":              {},
	"pb":              {},
	"email":           {},
	"formatted_phone": {},
}

// IsSearchColumn reports whether column may be used as a search target.
func IsSearchColumn(column string) bool {
	_, ok := searchColumns[column]
	return ok
}

// Gateway exposes the customer read operations.
type Gateway interface {
	ListTop(ctx context.Context, creds database.Credentials, limit int) ([]Customer, error)
	Search(ctx context.Context, creds database.Credentials, column, term string) ([]Customer, error)
}

// SQLGateway runs the queries against SQL Server.
type SQLGateway struct {
	connector database.Connector
}

var _ Gateway = (*SQLGateway)(nil)

func NewSQLGateway(connector database.Connector) (*SQLGateway, error) {
	if connector == nil {
		return nil, errors.New("[NewSQLGateway] connector is required")
	}
	return &SQLGateway{connector: connector}, nil
}

// ListTop returns up to limit customers ordered by name. A non-positive limit
// falls back to DefaultListLimit.
func (g *SQLGateway) ListTop(ctx context.Context, creds database.Credentials, limit int) ([]Customer, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := fmt.Sprintf("SELECT TOP (@limit) %s FROM dbo.cust ORDER BY name", projection)
	return g.query(ctx, creds, query, sql.Named("limit", limit))
}

// Search returns every customer whose column contains term, ordered by name.
// Matching is a substring LIKE with the term bound as a parameter; SQL Server's
// default collation makes it case-insensitive. Columns outside the allow-list
// are rejected before any connection is opened.
func (g *SQLGateway) Search(ctx context.Context, creds database.Credentials, column, term string) ([]Customer, error) {
	if !IsSearchColumn(column) {
		return nil, apperrors.ErrInvalidSearchColumn
	}

	query := fmt.Sprintf("SELECT %s FROM dbo.cust WHERE %s LIKE @term ORDER BY name", projection, column)
	return g.query(ctx, creds, query, sql.Named("term", "%"+term+"%"))
}

func (g *SQLGateway) query(ctx context.Context, creds database.Credentials, query string, args ...any) ([]Customer, error) {
	db, err := g.connector.Connect(ctx, creds)
	if err != nil {
		return nil, errors.Wrap(err, "[query] connect")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "[query] execute")
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var record [9]sql.NullString
		scanTargets := make([]any, len(record))
		for i := range record {
			scanTargets[i] = &record[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, errors.Wrap(err, "[query] scan")
		}
		customers = append(customers, Customer{
			AccountNo:      record[0].String,
			Name:           record[1].String,
			Surname:        record[2].String,
			Addr1:          record[3].String,
			Addr2:          record[4].String,
			PostalCode:     record[5].String,
			PBCode:         record[6].String,
			FormattedPhone: record[7].String,
			Email:          record[8].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[query] rows")
	}
	return customers, nil
}
