// services/meal_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcus-bailey/nom-nom-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type MealFoodRequest struct {
	FoodID   uint     `json:"food_id" binding:"required"`
	Servings *float64 `json:"servings"` // defaults to 1
}

type MealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Foods       []MealFoodRequest `json:"foods" binding:"required,min=1,dive"`
}

// MealUpdateRequest changes only what is present. A present Foods replaces
// the whole constituent set, an empty list clears it.
type MealUpdateRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Foods       *[]MealFoodRequest `json:"foods"`
}

// Aggregate sums each constituent's food profile scaled by its servings.
// No constituents is an all-zero profile.
func Aggregate(constituents []models.MealFood) models.Nutrients {
	var total models.Nutrients
	for _, mf := range constituents {
		total = total.Add(mf.Food.Nutrients.Scale(mf.Servings))
	}
	return total
}

func (s *MealService) List(ctx context.Context) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := s.withFoods(s.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *MealService) Get(ctx context.Context, id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := s.withFoods(s.db.WithContext(ctx)).First(&meal, id).Error; err != nil {
		return nil, lookupError(err, "meal", id)
	}
	return &meal, nil
}

// Totals resolves a meal and aggregates its constituents.
func (s *MealService) Totals(ctx context.Context, id uint) (*models.Meal, models.Nutrients, error) {
	meal, err := s.Get(ctx, id)
	if err != nil {
		return nil, models.Nutrients{}, err
	}
	for _, mf := range meal.Foods {
		if mf.Food.ID == 0 {
			return nil, models.Nutrients{}, notFoundf("food %d of meal %d not found", mf.FoodID, id)
		}
	}
	return meal, Aggregate(meal.Foods), nil
}

// Create inserts the meal and its constituents in one transaction.
func (s *MealService) Create(ctx context.Context, req MealRequest) (*models.Meal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	if len(req.Foods) == 0 {
		return nil, invalidf("a meal needs at least one food")
	}
	rows, err := constituentRows(req.Foods)
	if err != nil {
		return nil, err
	}

	var mealID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal := models.Meal{Name: name, Description: req.Description}
		if err := tx.Omit(clause.Associations).Create(&meal).Error; err != nil {
			return fmt.Errorf("insert meal: %w", err)
		}
		mealID = meal.ID
		return replaceConstituents(tx, meal.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, mealID)
}

// Update rewrites the meal row and, when given, its constituent set in one
// transaction. On any failure the previous set is left as it was.
func (s *MealService) Update(ctx context.Context, id uint, req MealUpdateRequest) (*models.Meal, error) {
	var rows []models.MealFood
	if req.Foods != nil {
		var err error
		if rows, err = constituentRows(*req.Foods); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, id).Error; err != nil {
			return lookupError(err, "meal", id)
		}
		if req.Name != nil {
			meal.Name = strings.TrimSpace(*req.Name)
			if meal.Name == "" {
				return invalidf("name is required")
			}
		}
		if req.Description != nil {
			meal.Description = *req.Description
		}
		if err := tx.Omit(clause.Associations).Save(&meal).Error; err != nil {
			return fmt.Errorf("update meal %d: %w", id, err)
		}
		if req.Foods == nil {
			return nil
		}
		return replaceConstituents(tx, meal.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ReplaceConstituents swaps a meal's constituent set atomically.
func (s *MealService) ReplaceConstituents(ctx context.Context, id uint, foods []MealFoodRequest) error {
	rows, err := constituentRows(foods)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Meal{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("load meal %d: %w", id, err)
		}
		if n == 0 {
			return notFoundf("meal %d not found", id)
		}
		return replaceConstituents(tx, id, rows)
	})
}

// Delete removes the meal; its constituents cascade and log entries that
// referenced it keep their snapshot.
func (s *MealService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Meal{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete meal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("meal %d not found", id)
	}
	return nil
}

func (s *MealService) withFoods(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Foods", func(db *gorm.DB) *gorm.DB { return db.Order("meal_foods.id ASC") }).
		Preload("Foods.Food")
}

// constituentRows validates a request's foods before any write happens.
func constituentRows(foods []MealFoodRequest) ([]models.MealFood, error) {
	rows := make([]models.MealFood, 0, len(foods))
	seen := make(map[uint]bool, len(foods))
	for _, f := range foods {
		if f.FoodID == 0 {
			return nil, invalidf("food_id is required for every meal food")
		}
		if seen[f.FoodID] {
			return nil, invalidf("food %d appears more than once", f.FoodID)
		}
		seen[f.FoodID] = true
		servings, err := servingsOrDefault(f.Servings)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.MealFood{FoodID: f.FoodID, Servings: servings})
	}
	return rows, nil
}

// replaceConstituents must run inside a transaction.
func replaceConstituents(tx *gorm.DB, mealID uint, rows []models.MealFood) error {
	if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealFood{}).Error; err != nil {
		return fmt.Errorf("clear meal %d foods: %w", mealID, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := requireFoods(tx, rows); err != nil {
		return err
	}
	for i := range rows {
		rows[i].MealID = mealID
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return notFoundf("food for meal %d not found", mealID)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return invalidf("a food appears more than once in meal %d", mealID)
		}
		return fmt.Errorf("insert meal %d foods: %w", mealID, err)
	}
	return nil
}

func requireFoods(tx *gorm.DB, rows []models.MealFood) error {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.FoodID)
	}
	var found []uint
	if err := tx.Model(&models.Food{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("load meal foods: %w", err)
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	for _, id := range ids {
		if !have[id] {
			return notFoundf("food %d not found", id)
		}
	}
	return nil
}
