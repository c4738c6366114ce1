package model

import "time"

type Notification struct {
	Id        string    `bson:"_id"`
	UserId    string    `bson:"user_id"`
	Title     string    `bson:"title"`
	Body      string    `bson:"body,omitempty"`
	Color     string    `bson:"color,omitempty"`
	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"created_at"`
}

func (Notification) CollectionName() string {
	return "notifications"
}
