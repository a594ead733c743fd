package validatorfake

import (
	"context"
	"sync"

	"github.com/LandDroid/Oppacu-Search-by-Customer/auth"
	"github.com/LandDroid/Oppacu-Search-by-Customer/internal/database"
	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
)

var _ auth.Validator = (*FakeValidator)(nil)

// FakeValidator accepts only the credential pairs it was told about.
type FakeValidator struct {
	lock      sync.RWMutex
	passwords map[string]string
	calls     int
}

func NewFakeValidator() *FakeValidator {
	return &FakeValidator{passwords: make(map[string]string)}
}

// Allow registers a credential pair as valid.
func (v *FakeValidator) Allow(username, password string) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.passwords[username] = password
}

func (v *FakeValidator) Validate(_ context.Context, creds database.Credentials) error {
	v.lock.Lock()
	v.calls++
	v.lock.Unlock()

	if creds.Username == "" || creds.Password == "" {
		return apperrors.ErrCredentialsRequired
	}

	v.lock.RLock()
	defer v.lock.RUnlock()
	if password, ok := v.passwords[creds.Username]; !ok || password != creds.Password {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// Calls returns how many times Validate ran.
func (v *FakeValidator) Calls() int {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.calls
}
