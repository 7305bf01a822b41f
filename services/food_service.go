package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/marcus-bailey/nom-nom-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// FoodRequest is the body of a create. Fiber defaults to 0.
type FoodRequest struct {
	Name         string   `json:"name" binding:"required"`
	Calories     *float64 `json:"calories" binding:"required,gte=0"`
	ProteinGrams *float64 `json:"protein_grams" binding:"required,gte=0"`
	CarbsGrams   *float64 `json:"carbs_grams" binding:"required,gte=0"`
	FiberGrams   *float64 `json:"fiber_grams" binding:"omitempty,gte=0"`
	FatGrams     *float64 `json:"fat_grams" binding:"required,gte=0"`
	ServingSize  string   `json:"serving_size"`
	ServingUnit  string   `json:"serving_unit"`
}

// FoodPatch is the body of an update; nil fields are left unchanged.
type FoodPatch struct {
	Name         *string  `json:"name"`
	Calories     *float64 `json:"calories" binding:"omitempty,gte=0"`
	ProteinGrams *float64 `json:"protein_grams" binding:"omitempty,gte=0"`
	CarbsGrams   *float64 `json:"carbs_grams" binding:"omitempty,gte=0"`
	FiberGrams   *float64 `json:"fiber_grams" binding:"omitempty,gte=0"`
	FatGrams     *float64 `json:"fat_grams" binding:"omitempty,gte=0"`
	ServingSize  *string  `json:"serving_size"`
	ServingUnit  *string  `json:"serving_unit"`
}

// List returns all foods, catalog entries the user created first, optionally
// filtered by a case-insensitive name substring.
func (s *FoodService) List(ctx context.Context, search string) ([]models.Food, error) {
	q := s.db.WithContext(ctx).Model(&models.Food{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	foods := []models.Food{}
	if err := q.Order("is_custom DESC, name ASC").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

// Get resolves a food id to its nutrient profile.
func (s *FoodService) Get(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, lookupError(err, "food", id)
	}
	return &food, nil
}

// Scale resolves a food and multiplies its profile by servings.
func (s *FoodService) Scale(ctx context.Context, id uint, servings float64) (models.Nutrients, error) {
	if err := checkServings(servings); err != nil {
		return models.Nutrients{}, err
	}
	food, err := s.Get(ctx, id)
	if err != nil {
		return models.Nutrients{}, err
	}
	return food.Nutrients.Scale(servings), nil
}

func (s *FoodService) Create(ctx context.Context, req FoodRequest) (*models.Food, error) {
	if req.Calories == nil || req.ProteinGrams == nil || req.CarbsGrams == nil || req.FatGrams == nil {
		return nil, invalidf("missing required fields")
	}
	food := models.Food{
		Name: strings.TrimSpace(req.Name),
		Nutrients: models.Nutrients{
			Calories:     *req.Calories,
			ProteinGrams: *req.ProteinGrams,
			CarbsGrams:   *req.CarbsGrams,
			FatGrams:     *req.FatGrams,
		},
		ServingSize: req.ServingSize,
		ServingUnit: req.ServingUnit,
		IsCustom:    true,
	}
	if req.FiberGrams != nil {
		food.FiberGrams = *req.FiberGrams
	}
	if err := s.validate(ctx, &food); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, saveFoodError(err)
	}
	return &food, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, patch FoodPatch) (*models.Food, error) {
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		food.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Calories != nil {
		food.Calories = *patch.Calories
	}
	if patch.ProteinGrams != nil {
		food.ProteinGrams = *patch.ProteinGrams
	}
	if patch.CarbsGrams != nil {
		food.CarbsGrams = *patch.CarbsGrams
	}
	if patch.FiberGrams != nil {
		food.FiberGrams = *patch.FiberGrams
	}
	if patch.FatGrams != nil {
		food.FatGrams = *patch.FatGrams
	}
	if patch.ServingSize != nil {
		food.ServingSize = *patch.ServingSize
	}
	if patch.ServingUnit != nil {
		food.ServingUnit = *patch.ServingUnit
	}
	if err := s.validate(ctx, food); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(food).Error; err != nil {
		return nil, saveFoodError(err)
	}
	return food, nil
}

// Delete hard-deletes a food. Meal constituents using it are cascaded away;
// log entries keep their snapshot and lose the reference.
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Food{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete food %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("food %d not found", id)
	}
	return nil
}

// Seed inserts the reference catalog, skipping names that already exist.
func (s *FoodService) Seed(ctx context.Context) (int64, error) {
	foods := make([]models.Food, len(referenceCatalog))
	copy(foods, referenceCatalog)
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&foods)
	if res.Error != nil {
		return 0, fmt.Errorf("seed foods: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *FoodService) validate(ctx context.Context, food *models.Food) error {
	if food.Name == "" {
		return invalidf("name is required")
	}
	if err := food.Nutrients.Validate(); err != nil {
		return invalidf("%v", err)
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Food{}).
		Where("name = ? AND id <> ?", food.Name, food.ID).
		Count(&n).Error; err != nil {
		return fmt.Errorf("check food name: %w", err)
	}
	if n > 0 {
		return conflictf("a food with this name already exists")
	}
	return nil
}

func saveFoodError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflictf("a food with this name already exists")
	}
	return fmt.Errorf("save food: %w", err)
}

// servingsOrDefault applies the default of one serving when the count was
// omitted from the request.
func servingsOrDefault(p *float64) (float64, error) {
	if p == nil {
		return 1, nil
	}
	if err := checkServings(*p); err != nil {
		return 0, err
	}
	return *p, nil
}

func checkServings(v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return invalidf("servings must be greater than 0")
	}
	return nil
}
