package session

// Roles
const (
	RoleStudent Role = "student" // -> STUDENT AREA
	RoleTeacher Role = "teacher" // -> TEACHER AREA
)

// Role is the closed set of roles an authenticated Identity can have.
type Role string

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Identity is the currently authenticated user of a session.
type Identity struct {
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

func (i Identity) IsStudent() bool { return i.Role == RoleStudent }
func (i Identity) IsTeacher() bool { return i.Role == RoleTeacher }

// copyIdentity returns a copy of ident so that callers never share the Manager's value.
func copyIdentity(ident *Identity) *Identity {
	if ident == nil {
		return nil
	}
	cp := *ident
	return &cp
}

func sameIdentity(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
