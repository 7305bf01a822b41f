package services

import (
	"time"

	"github.com/marcus-bailey/nom-nom-tracker/models"
	"github.com/marcus-bailey/nom-nom-tracker/utils"
)

// FoodView is a food as the API returns it.
type FoodView struct {
	models.Food
	NetCarbsGrams float64 `json:"net_carbs_grams"`
	utils.MacroPercentages
}

func ComputeFoodDisplay(food models.Food) FoodView {
	net := food.NetCarbs()
	return FoodView{
		Food:             food,
		NetCarbsGrams:    net,
		MacroPercentages: utils.Percentages(food.ProteinGrams, net, food.FatGrams, food.Calories),
	}
}

func FoodViews(foods []models.Food) []FoodView {
	out := make([]FoodView, 0, len(foods))
	for _, f := range foods {
		out = append(out, ComputeFoodDisplay(f))
	}
	return out
}

// MealFoodView is one constituent: the food's per-serving profile and the
// servings used in the meal.
type MealFoodView struct {
	FoodID   uint    `json:"food_id"`
	FoodName string  `json:"food_name"`
	Servings float64 `json:"servings"`
	models.Nutrients
	NetCarbsGrams float64 `json:"net_carbs_grams"`
	utils.MacroPercentages
}

type MealTotals struct {
	Calories      float64 `json:"calories"`
	ProteinGrams  float64 `json:"protein_grams"`
	CarbsGrams    float64 `json:"carbs_grams"`
	FiberGrams    float64 `json:"fiber_grams"`
	NetCarbsGrams float64 `json:"net_carbs_grams"`
	FatGrams      float64 `json:"fat_grams"`
}

type MealView struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Foods       []MealFoodView `json:"foods"`
	Totals      MealTotals     `json:"totals"`
	utils.MacroPercentages
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeMealDisplay derives a meal's totals and calorie split from its
// constituents.
func ComputeMealDisplay(meal models.Meal) MealView {
	total := Aggregate(meal.Foods)
	net := total.NetCarbs()
	view := MealView{
		ID:          meal.ID,
		Name:        meal.Name,
		Description: meal.Description,
		Foods:       make([]MealFoodView, 0, len(meal.Foods)),
		Totals: MealTotals{
			Calories:      utils.Round2(total.Calories),
			ProteinGrams:  utils.Round2(total.ProteinGrams),
			CarbsGrams:    utils.Round2(total.CarbsGrams),
			FiberGrams:    utils.Round2(total.FiberGrams),
			NetCarbsGrams: utils.Round2(net),
			FatGrams:      utils.Round2(total.FatGrams),
		},
		MacroPercentages: utils.Percentages(total.ProteinGrams, net, total.FatGrams, total.Calories),
		CreatedAt:        meal.CreatedAt,
		UpdatedAt:        meal.UpdatedAt,
	}
	for _, mf := range meal.Foods {
		fv := ComputeFoodDisplay(mf.Food)
		view.Foods = append(view.Foods, MealFoodView{
			FoodID:           mf.FoodID,
			FoodName:         mf.Food.Name,
			Servings:         mf.Servings,
			Nutrients:        mf.Food.Nutrients,
			NetCarbsGrams:    fv.NetCarbsGrams,
			MacroPercentages: fv.MacroPercentages,
		})
	}
	return view
}

func MealViews(meals []models.Meal) []MealView {
	out := make([]MealView, 0, len(meals))
	for _, m := range meals {
		out = append(out, ComputeMealDisplay(m))
	}
	return out
}

// LogView is a log entry with the names of its source, when still present.
type LogView struct {
	models.FoodLog
	FoodName *string `json:"food_name"`
	MealName *string `json:"meal_name"`
}

func NewLogView(l models.FoodLog) LogView {
	v := LogView{FoodLog: l}
	if l.Food != nil {
		name := l.Food.Name
		v.FoodName = &name
	}
	if l.Meal != nil {
		name := l.Meal.Name
		v.MealName = &name
	}
	return v
}
