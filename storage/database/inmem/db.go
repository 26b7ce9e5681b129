package inmemdb

import (
	"sync"

	"github.com/trezcool/agenda/core/session"
)

type (
	DB struct {
		identity *identityTable
	}

	identityTable struct {
		sync.RWMutex
		table map[string]session.Identity // {normalized name: Identity}
	}
)

// demo accounts; every one of them logs in with session.DemoPassword
var seedIdentities = map[string]session.Identity{
	"student": {DisplayName: "Student", Role: session.RoleStudent},
	"teacher": {DisplayName: "Teacher", Role: session.RoleTeacher},
}

// Open returns a new in-memory DB seeded with the demo accounts. Nothing is persisted.
func Open() (*DB, error) {
	db := &DB{
		identity: &identityTable{table: make(map[string]session.Identity, len(seedIdentities))},
	}
	for name, ident := range seedIdentities {
		db.identity.table[name] = ident
	}
	return db, nil
}
