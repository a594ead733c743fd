// Package auth validates caller credentials against the database itself.
// There is no user table and no password store: a login is valid exactly when
// SQL Server accepts it.
package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
)

// Validator checks whether a credential pair can open a database connection.
type Validator interface {
	Validate(ctx context.Context, creds database.Credentials) error
}

// SQLValidator authenticates by opening and immediately releasing a trial
// connection with the supplied credentials.
type SQLValidator struct {
	connector database.Connector
}

var _ Validator = (*SQLValidator)(nil)

func NewSQLValidator(connector database.Connector) (*SQLValidator, error) {
	if connector == nil {
		return nil, errors.New("[NewSQLValidator] connector is required")
	}
	return &SQLValidator{connector: connector}, nil
}

// Validate returns nil when the database accepts the credentials. Any
// connection or login failure maps to ErrInvalidCredentials; the driver's
// error text stays server-side, wrapped for the log.
func (v *SQLValidator) Validate(ctx context.Context, creds database.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return apperrors.ErrCredentialsRequired
	}

	db, err := v.connector.Connect(ctx, creds)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidCredentials, "[Validate] trial connection: %v", err)
	}
	// Trial connection only; release it regardless of what follows.
	return errors.Wrap(db.Close(), "[Validate] close trial connection")
}
