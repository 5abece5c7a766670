package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusTodo  TaskStatus = "TODO"
	StatusDoing TaskStatus = "DOING"
	StatusDone  TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Rank gives the workflow position used for list ordering.
func (s TaskStatus) Rank() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusDoing:
		return 1
	case StatusDone:
		return 2
	}
	return 3
}

type Task struct {
	ID          string     `gorm:"primaryKey;size:36"`
	UserID      string     `gorm:"size:36;not null;index"`
	Title       string     `gorm:"size:120;not null"`
	Description *string    `gorm:"size:2000"`
	Status      TaskStatus `gorm:"size:16;not null;default:'TODO'"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	return nil
}
