package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
)

type identityRepository struct {
	db *identityTable
}

// IdentityRepository is a session.Directory that can also list its accounts.
type IdentityRepository interface {
	session.Directory
	Names() []string
}

func NewIdentityRepository(db *DB) IdentityRepository {
	return &identityRepository{db: db.identity}
}

func (repo *identityRepository) GetIdentity(ctx context.Context, name string) (session.Identity, error) {
	if err := ctx.Err(); err != nil {
		return session.Identity{}, err
	}

	repo.db.RLock()
	defer repo.db.RUnlock()

	if ident, ok := repo.db.table[core.CleanString(name, true /* lower */)]; ok {
		return ident, nil
	}
	return session.Identity{}, session.ErrUnknownUser
}

// Names returns the account names, sorted.
func (repo *identityRepository) Names() []string {
	repo.db.RLock()
	defer repo.db.RUnlock()

	names := make([]string, 0, len(repo.db.table))
	for name := range repo.db.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
