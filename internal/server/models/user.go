package models

import "time"

type User struct {
	ID             int64
	UserName       string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}
