package model

import "time"

type User struct {
	Id         string     `bson:"_id"`
	DiscordId  string     `bson:"discord_id"`
	Username   string     `bson:"username"`
	GlobalName string     `bson:"global_name,omitempty"`
	Email      string     `bson:"email,omitempty"`
	AvatarURL  string     `bson:"avatar_url,omitempty"`
	Role       string     `bson:"role"`
	Banned     bool       `bson:"banned"`
	LastLogin  *time.Time `bson:"last_login,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
}

func (User) CollectionName() string {
	return "users"
}
