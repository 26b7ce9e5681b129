package logsvc

import (
	"errors"
	"testing"

	"github.com/rollbar/rollbar-go"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/agenda/core/session"
)

func TestRollbarLogger_prepare(t *testing.T) {
	defer func() {
		setPersonFunc = rollbar.SetPerson
		clearPersonFunc = rollbar.ClearPerson
	}()

	errLogin := errors.New("invalid credentials")
	teacher := session.Identity{DisplayName: "Teacher", Role: session.RoleTeacher}
	student := session.Identity{DisplayName: "Student", Role: session.RoleStudent}
	extra := map[string]interface{}{"name": "admin"}

	tests := []struct {
		name       string
		args       []interface{}
		want       []interface{}
		wantPerson []string // id, username; nil when cleared
	}{
		{name: "no args", want: []interface{}{"msg"}},
		{name: "no identity", args: []interface{}{errLogin, extra}, want: []interface{}{"msg", errLogin, extra}},
		{
			name:       "identity",
			args:       []interface{}{teacher},
			want:       []interface{}{"msg"},
			wantPerson: []string{"teacher", "Teacher"},
		},
		{
			name:       "identity among other args",
			args:       []interface{}{errLogin, student, extra},
			want:       []interface{}{"msg", errLogin, extra},
			wantPerson: []string{"student", "Student"},
		},
		{
			name:       "only the first identity is the person",
			args:       []interface{}{student, teacher},
			want:       []interface{}{"msg"},
			wantPerson: []string{"student", "Student"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var person []string
			var cleared bool
			setPersonFunc = func(id, username, email string) {
				person = []string{id, username}
				assert.Empty(t, email)
			}
			clearPersonFunc = func() { cleared = true }

			got := RollbarLogger{}.prepare("msg", tt.args)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPerson, person)
			assert.Equal(t, tt.wantPerson == nil, cleared)
		})
	}
}
