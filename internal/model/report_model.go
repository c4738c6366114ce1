package model

import "time"

type Report struct {
	Id         string     `bson:"_id"`
	Title      string     `bson:"title"`
	Content    string     `bson:"content"`
	Importance string     `bson:"importance"`
	Tags       []string   `bson:"tags,omitempty"`
	Color      string     `bson:"color,omitempty"`
	Icon       string     `bson:"icon,omitempty"`
	FolderId   string     `bson:"folder_id"`
	AuthorId   string     `bson:"author_id"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  *time.Time `bson:"updated_at,omitempty"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
	IsDeleted  bool       `bson:"is_deleted"`
}

func (Report) CollectionName() string {
	return "reports"
}

type Draft struct {
	Id         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	Importance string    `bson:"importance"`
	Tags       []string  `bson:"tags,omitempty"`
	Color      string    `bson:"color,omitempty"`
	Icon       string    `bson:"icon,omitempty"`
	FolderId   string    `bson:"folder_id,omitempty"`
	AuthorId   string    `bson:"author_id"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (Draft) CollectionName() string {
	return "drafts"
}
