package gatewayfake

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/LandDroid/Oppacu-Search-by-Customer/customers"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
)

var _ customers.Gateway = (*FakeGateway)(nil)

// FakeGateway serves canned rows from memory with the same allow-list,
// ordering, and substring semantics as the SQL gateway. It records the
// credentials of the last call so tests can assert credential pass-through,
// and can be forced to fail to exercise the InternalError path.
type FakeGateway struct {
	lock      sync.RWMutex
	rows      []customers.Customer
	lastCreds database.Credentials
	failWith  error
}

func NewFakeGateway(rows ...customers.Customer) *FakeGateway {
	return &FakeGateway{rows: rows}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (g *FakeGateway) FailWith(err error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.failWith = err
}

// LastCredentials returns the credentials used by the most recent call.
func (g *FakeGateway) LastCredentials() database.Credentials {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.lastCreds
}

func (g *FakeGateway) ListTop(_ context.Context, creds database.Credentials, limit int) ([]customers.Customer, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.lastCreds = creds
	if g.failWith != nil {
		return nil, g.failWith
	}

	if limit <= 0 {
		limit = customers.DefaultListLimit
	}
	result := sortedByName(g.rows)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (g *FakeGateway) Search(_ context.Context, creds database.Credentials, column, term string) ([]customers.Customer, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.lastCreds = creds
	if !customers.IsSearchColumn(column) {
		return nil, apperrors.ErrInvalidSearchColumn
	}
	if g.failWith != nil {
		return nil, g.failWith
	}

	matched := make([]customers.Customer, 0)
	needle := strings.ToLower(term)
	for _, row := range g.rows {
		if strings.Contains(strings.ToLower(columnValue(row, column)), needle) {
			matched = append(matched, row)
		}
	}
	return sortedByName(matched), nil
}

func sortedByName(rows []customers.Customer) []customers.Customer {
	sorted := make([]customers.Customer, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func columnValue(row customers.Customer, column string) string {
	switch column {
	case "no_":
		return row.AccountNo
	case "name":
		return row.Name
	case "surname":
		return row.Surname
	case "addr1":
		return row.Addr1
	case "addr2":
		return row.Addr2
	case "pc":
		return row.PostalCode
	case "pb":
		return row.PBCode
	case "email":
		return row.Email
	case "formatted_phone":
		return row.FormattedPhone
	}
	return ""
}
