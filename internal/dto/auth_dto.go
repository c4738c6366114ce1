package dto

import (
	"time"

	"github.com/google/uuid"
)

type DiscordCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	Id         uuid.UUID  `json:"id"`
	DiscordId  string     `json:"discord_id"`
	Username   string     `json:"username"`
	GlobalName string     `json:"global_name,omitempty"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	Role       string     `json:"role"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
