package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Subscribed bool      `db:"subscribed" json:"subscribed"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
