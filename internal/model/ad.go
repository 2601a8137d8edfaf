package model

import (
	"time"

	"github.com/google/uuid"
)

type Ad struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Content    string     `db:"content" json:"content"`
	CategoryID *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	AuthorID   uuid.UUID  `db:"author_id" json:"author_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type AdDetails struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Content      string     `db:"content" json:"content"`
	CategoryID   *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	CategorySlug *string    `db:"category_slug" json:"category,omitempty"`
	AuthorID     uuid.UUID  `db:"author_id" json:"author_id"`
	AuthorName   string     `db:"author_name" json:"author_name"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
