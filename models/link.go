package models

import (
	"time"
)

type Link struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	LongLink  string    `json:"longLink" gorm:"not null"`
	NanoLink  string    `json:"nanoLink" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
