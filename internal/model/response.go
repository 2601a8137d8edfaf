package model

import (
	"time"

	"github.com/google/uuid"
)

type Response struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AdID       uuid.UUID `db:"ad_id" json:"ad_id"`
	AuthorID   uuid.UUID `db:"author_id" json:"author_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	IsAccepted bool      `db:"is_accepted" json:"is_accepted"`
}

// ResponseDetails joins in the parent ad so callers can check ownership
// without a second query.
type ResponseDetails struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AdID       uuid.UUID `db:"ad_id" json:"ad_id"`
	AdTitle    string    `db:"ad_title" json:"ad_title"`
	AdAuthorID uuid.UUID `db:"ad_author_id" json:"ad_author_id"`
	AuthorID   uuid.UUID `db:"author_id" json:"author_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	IsAccepted bool      `db:"is_accepted" json:"is_accepted"`
}
