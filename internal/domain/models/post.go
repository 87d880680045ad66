package models

import (
	"time"

	"github.com/google/uuid"
)

// PostTypeCar единственный тип записи с мета-боксом слайдера.
const PostTypeCar = "car"

type Post struct {
	ID        int64     `db:"id" json:"id"`
	PostType  string    `db:"post_type" json:"post_type"`
	Title     string    `db:"title" json:"title"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (p Post) HasSlider() bool {
	return p.PostType == PostTypeCar
}

// EditorDraft серверная копия рабочего набора открытого редактора.
type EditorDraft struct {
	ID        uuid.UUID           `json:"id"`
	PostID    int64               `json:"post_id"`
	Hash      string              `json:"hash"`
	Previews  map[string][]string `json:"previews,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}
