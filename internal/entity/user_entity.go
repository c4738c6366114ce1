package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the platform-wide permission tier. It is assigned by admins and
// carried in the session token, so a change takes effect on next login or
// token refresh.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

var roleRank = map[Role]int{
	RoleGuest:  0,
	RoleMember: 1,
	RoleLeader: 2,
	RoleAdmin:  3,
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

type User struct {
	Id         uuid.UUID
	DiscordId  string
	Username   string
	GlobalName string
	Email      string
	AvatarURL  string
	Role       Role
	Banned     bool
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayName prefers the Discord global display name over the raw username.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
