package model

import "time"

type Mission struct {
	Id          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	Status      string     `bson:"status"`
	AssigneeIds []string   `bson:"assignee_ids,omitempty"`
	DueAt       *time.Time `bson:"due_at,omitempty"`
	CreatedBy   string     `bson:"created_by"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

func (Mission) CollectionName() string {
	return "missions"
}
