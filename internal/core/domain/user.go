package domain

import (
	"time"
)

type User struct {
	ID                string `db:"id"`
	Name              string `validate:"required,min=2,max=100"`
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `db:"encrypted_password" validate:"required"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
