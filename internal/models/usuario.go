package models

import "time"

type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Nome         string `gorm:"size:100;not null"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
