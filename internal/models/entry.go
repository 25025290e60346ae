package models

import "time"

// Entry is one dated diary record owned by a user.
type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Date      string    `json:"date"` // user-supplied, YYYY-MM-DD as submitted
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Photos    []Photo   `json:"photos,omitempty"`
}

// EntryPreview is the sidebar listing shape: id, date and a content snippet.
type EntryPreview struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Preview string `json:"preview"`
}

// Photo is a stored attachment belonging to exactly one entry.
type Photo struct {
	ID        int       `json:"id"`
	EntryID   int       `json:"entry_id"`
	Filename  string    `json:"filename"` // stored name, not the original
	CreatedAt time.Time `json:"created_at"`
}
