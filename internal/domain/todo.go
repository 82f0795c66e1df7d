package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is the only persisted entity. Rows are created once and never
// updated or deleted. Completed is displayed but nothing sets it yet;
// toggling is a known future extension.
type Todo struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Title     string    `gorm:"not null"`
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index;precision:6"`
}

// BeforeCreate assigns a fresh ID unless the caller already set one.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
