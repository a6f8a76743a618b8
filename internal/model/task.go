package model

import "time"

// Task is a to-do item. Public tasks are visible without authentication,
// private ones only through the token-guarded routes.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	IsPublic  bool      `json:"is_public" gorm:"default:true;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
