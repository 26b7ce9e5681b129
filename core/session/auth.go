package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/agenda/core"
)

// DemoPassword is the one credential accepted by the DemoAuthenticator.
const DemoPassword = "password"

// bcrypt only reads the first 72 bytes of a key and stops at the first NUL
const maxPasswordLen = 72

type (
	// Authenticator validates a credential attempt and returns the matching Identity.
	Authenticator interface {
		Authenticate(ctx context.Context, name, pwd string) (Identity, error)
	}

	// Directory resolves a normalized (trimmed, lower-cased) user name to its Identity.
	Directory interface {
		GetIdentity(ctx context.Context, name string) (Identity, error)
	}
)

// DemoAuthenticator accepts DemoPassword for every name known to its Directory.
// It is a placeholder for a real identity provider and must not be used as a security boundary.
type DemoAuthenticator struct {
	dir     Directory
	pwdHash []byte
}

var _ Authenticator = (*DemoAuthenticator)(nil)

func NewDemoAuthenticator(dir Directory) (*DemoAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing demo password")
	}
	return &DemoAuthenticator{dir: dir, pwdHash: hash}, nil
}

// Authenticate checks the password first, then the name:
// a wrong password is always ErrInvalidCredentials, whatever the name.
func (a *DemoAuthenticator) Authenticate(ctx context.Context, name, pwd string) (Identity, error) {
	if len(pwd) > maxPasswordLen || strings.IndexByte(pwd, 0) >= 0 {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.pwdHash, []byte(pwd)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	ident, err := a.dir.GetIdentity(ctx, core.CleanString(name, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrUnknownUser {
			return Identity{}, ErrUnknownUser
		}
		return Identity{}, errors.Wrap(err, "finding identity by name")
	}
	if !ident.Role.IsValid() {
		return Identity{}, ErrUnknownUser
	}
	return ident, nil
}
