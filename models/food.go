package models

import "time"

// A catalog entry. Nutrients describe one reference serving; ServingSize and
// ServingUnit are display labels only.
type Food struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Nutrients   `gorm:"embedded"`
	ServingSize string    `gorm:"size:100" json:"serving_size"`
	ServingUnit string    `gorm:"size:50" json:"serving_unit"`
	IsCustom    bool      `gorm:"not null;index" json:"is_custom"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
