// Package route decides which root area of the app a host mounts for a session.
package route

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/agenda/core/session"
)

// Destinations
const (
	Unauthenticated Destination = iota
	StudentArea
	TeacherArea
)

// Destination is one of the mutually exclusive root areas of the app.
type Destination int

var destinationNames = [...]string{
	Unauthenticated: "unauthenticated",
	StudentArea:     "student",
	TeacherArea:     "teacher",
}

func (d Destination) String() string {
	if d < Unauthenticated || d > TeacherArea {
		return "invalid"
	}
	return destinationNames[d]
}

func (d Destination) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Destination) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for dest, n := range destinationNames {
		if n == name {
			*d = Destination(dest)
			return nil
		}
	}
	return errors.Errorf("invalid destination %q", name)
}

// Select maps a session to its Destination. A nil identity means there is no session.
func Select(ident *session.Identity) Destination {
	if ident == nil {
		return Unauthenticated
	}
	if ident.Role == session.RoleStudent {
		return StudentArea
	}
	return TeacherArea
}
