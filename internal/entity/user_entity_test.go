package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleAdmin, RoleGuest, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleLeader, RoleMember, true},
		{RoleLeader, RoleAdmin, false},
		{RoleMember, RoleLeader, false},
		{RoleGuest, RoleMember, false},
		{RoleGuest, RoleGuest, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.AtLeast(tt.min), "%s at least %s", tt.role, tt.min)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestDisplayNamePrefersGlobalName(t *testing.T) {
	u := User{Username: "raw_handle", GlobalName: "Display Name"}
	assert.Equal(t, "Display Name", u.DisplayName())

	u.GlobalName = ""
	assert.Equal(t, "raw_handle", u.DisplayName())
}
