package model

import "time"

type Folder struct {
	Id            string     `bson:"_id"`
	Name          string     `bson:"name"`
	Description   string     `bson:"description,omitempty"`
	CoverImageURL string     `bson:"cover_image_url,omitempty"`
	Color         string     `bson:"color,omitempty"`
	Icon          string     `bson:"icon,omitempty"`
	Position      int        `bson:"position"`
	CreatedBy     string     `bson:"created_by"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty"`
}

func (Folder) CollectionName() string {
	return "folders"
}
