package models

import "time"

// A named combination of foods. Totals are never stored; they are derived
// from Foods on every read.
type Meal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Foods       []MealFood `gorm:"constraint:OnDelete:CASCADE" json:"foods"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MealFood is one constituent of a meal: a food and how many servings of it.
// Deleting the food removes the constituent.
type MealFood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MealID    uint      `gorm:"not null;uniqueIndex:idx_meal_food" json:"meal_id"`
	FoodID    uint      `gorm:"not null;uniqueIndex:idx_meal_food;index" json:"food_id"`
	Food      Food      `gorm:"constraint:OnDelete:CASCADE" json:"food"`
	Servings  float64   `gorm:"not null;default:1" json:"servings"`
	CreatedAt time.Time `json:"created_at"`
}
