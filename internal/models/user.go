package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"created_at"`
}

// UserInfo is one row of the admin directory: a user plus aggregate counts.
type UserInfo struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	EntryCount int       `json:"entry_count"`
	PhotoCount int       `json:"photo_count"`
	JoinedAt   time.Time `json:"joined_at"`
}
