package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"STUDENT", RoleStudent, true},
		{"student", RoleStudent, true},
		{"  Organization ", RoleOrganization, true},
		{"UNIVERSITY", RoleUniversity, true},
		{"ADMIN", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseRole(tc.input)
		require.Equal(t, tc.ok, ok, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestHasRole(t *testing.T) {
	require.True(t, HasRole("STUDENT", RoleStudent))
	require.True(t, HasRole("student", RoleStudent, RoleOrganization))
	require.False(t, HasRole("STUDENT", RoleOrganization))
	require.False(t, HasRole("unknown", RoleStudent))
	require.False(t, HasRole("STUDENT"))
}

func TestIsAdmin(t *testing.T) {
	require.True(t, IsAdmin("ADMIN"))
	require.True(t, IsAdmin("admin"))
	require.False(t, IsAdmin("STUDENT"))
	require.False(t, IsAdmin(""))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("8Characters**")
	require.NoError(t, err)
	require.NotEqual(t, "8Characters**", hash)

	require.NoError(t, VerifyPassword(hash, "8Characters**"))
	require.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrPasswordMismatch)
}
