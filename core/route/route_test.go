package route

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agenda/core/session"
	inmemdb "github.com/trezcool/agenda/storage/database/inmem"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		ident *session.Identity
		want  Destination
	}{
		{name: "no session", want: Unauthenticated},
		{name: "student", ident: &session.Identity{DisplayName: "Student", Role: session.RoleStudent}, want: StudentArea},
		{name: "teacher", ident: &session.Identity{DisplayName: "Teacher", Role: session.RoleTeacher}, want: TeacherArea},
		{name: "display name is ignored", ident: &session.Identity{DisplayName: "Mr. T", Role: session.RoleStudent}, want: StudentArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.ident)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Select(tt.ident), "Select() must be deterministic")
		})
	}
}

func TestDestination_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "student", StudentArea.String())
	assert.Equal(t, "teacher", TeacherArea.String())
	assert.Equal(t, "invalid", Destination(42).String())

	data, err := json.Marshal(map[string]Destination{"destination": TeacherArea})
	require.NoError(t, err)
	assert.JSONEq(t, `{"destination": "teacher"}`, string(data))

	var got map[string]Destination
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, TeacherArea, got["destination"])

	var d Destination
	assert.Error(t, json.Unmarshal([]byte(`"admin"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`2`), &d))
}

func TestScreens(t *testing.T) {
	names := func(screens []Screen) []string {
		n := make([]string, 0, len(screens))
		for _, s := range screens {
			n = append(n, s.Name)
		}
		return n
	}

	assert.Equal(t, []string{"Login"}, names(Screens(Unauthenticated)))
	assert.Equal(t, []string{"Duties", "Calendar", "Profile", "Marks"}, names(Screens(StudentArea)))
	assert.Equal(t, []string{"Duties", "Calendar", "Marks", "Profile"}, names(Screens(TeacherArea)))

	assert.Equal(t, "checkmark-circle-outline", Screens(StudentArea)[0].Icon)
	assert.Equal(t, "create-outline", Screens(TeacherArea)[0].Icon)

	// callers cannot alter the table
	screens := Screens(StudentArea)
	screens[0].Icon = "lol"
	assert.Equal(t, "checkmark-circle-outline", Screens(StudentArea)[0].Icon)

	assert.Equal(t, "Login", Title(Unauthenticated))
	assert.Equal(t, "Student", Title(StudentArea))
	assert.Equal(t, "Teacher", Title(TeacherArea))
}

func TestSelect_afterLogout(t *testing.T) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	auth, err := session.NewDemoAuthenticator(inmemdb.NewIdentityRepository(db))
	require.NoError(t, err)
	mgr := session.NewManager(auth, 0, nopLogger{})

	_, err = mgr.Login(context.Background(), "student", session.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, StudentArea, Select(mgr.Current()))

	mgr.Logout()
	assert.Equal(t, Unauthenticated, Select(mgr.Current()))
}
