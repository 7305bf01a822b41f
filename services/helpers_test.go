package services

import (
	"context"
	"errors"
	"testing"

	"github.com/marcus-bailey/nom-nom-tracker/config"
	"github.com/marcus-bailey/nom-nom-tracker/models"

	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	foods     *FoodService
	meals     *MealService
	logs      *LogService
	analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	foods := NewFoodService(db)
	meals := NewMealService(db)
	return &testEnv{
		db:        db,
		foods:     foods,
		meals:     meals,
		logs:      NewLogService(db, foods, meals),
		analytics: NewAnalyticsService(db),
	}
}

func f64(v float64) *float64 { return &v }
func uintp(v uint) *uint     { return &v }
func strp(v string) *string  { return &v }

func (e *testEnv) mustFood(t *testing.T, name string, kcal, protein, carbs, fiber, fat float64) *models.Food {
	t.Helper()
	food, err := e.foods.Create(context.Background(), FoodRequest{
		Name:         name,
		Calories:     f64(kcal),
		ProteinGrams: f64(protein),
		CarbsGrams:   f64(carbs),
		FiberGrams:   f64(fiber),
		FatGrams:     f64(fat),
	})
	if err != nil {
		t.Fatalf("create food %s: %v", name, err)
	}
	return food
}

func (e *testEnv) mustMeal(t *testing.T, name string, foods ...MealFoodRequest) *models.Meal {
	t.Helper()
	meal, err := e.meals.Create(context.Background(), MealRequest{Name: name, Foods: foods})
	if err != nil {
		t.Fatalf("create meal %s: %v", name, err)
	}
	return meal
}

func (e *testEnv) mustLog(t *testing.T, req LogRequest) *LogView {
	t.Helper()
	v, err := e.logs.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	return v
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("err = %v, want kind %v", err, kind)
	}
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	const eps = 1e-9
	if d := got - want; d > eps || d < -eps {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
