package models

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot is the nutrient profile frozen onto a log entry when it is
// created or recomputed. It does not follow later edits to the source.
type Snapshot struct {
	Calories      float64 `gorm:"not null" json:"calories"`
	ProteinGrams  float64 `gorm:"not null" json:"protein_grams"`
	CarbsGrams    float64 `gorm:"not null" json:"carbs_grams"`
	NetCarbsGrams float64 `gorm:"not null" json:"net_carbs_grams"`
	FiberGrams    float64 `gorm:"not null" json:"fiber_grams"`
	FatGrams      float64 `gorm:"not null" json:"fat_grams"`
}

// SnapshotOf freezes a nutrient profile, deriving net carbs.
func SnapshotOf(n Nutrients) Snapshot {
	return Snapshot{
		Calories:      n.Calories,
		ProteinGrams:  n.ProteinGrams,
		CarbsGrams:    n.CarbsGrams,
		NetCarbsGrams: n.NetCarbs(),
		FiberGrams:    n.FiberGrams,
		FatGrams:      n.FatGrams,
	}
}

// FoodLog records one consumption event of either a food or a meal.
// LogDate is a calendar date "YYYY-MM-DD"; range filters compare it as text.
// When the referenced food or meal is deleted the reference is nulled and the
// snapshot is kept.
type FoodLog struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	LogDate  string         `gorm:"size:10;not null;index" json:"log_date"`
	LogTime  datatypes.Time `gorm:"not null" json:"log_time"`
	FoodID   *uint          `gorm:"index" json:"food_id"`
	Food     *Food          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	MealID   *uint          `gorm:"index" json:"meal_id"`
	Meal     *Meal          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Servings float64        `gorm:"not null;default:1" json:"servings"`
	Snapshot `gorm:"embedded"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
