package services

import (
	"context"
	"testing"

	"github.com/marcus-bailey/nom-nom-tracker/models"
)

func TestAggregate(t *testing.T) {
	oats := models.Food{ID: 1, Nutrients: models.Nutrients{Calories: 150, ProteinGrams: 5, CarbsGrams: 27, FiberGrams: 4, FatGrams: 3}}
	milk := models.Food{ID: 2, Nutrients: models.Nutrients{Calories: 50, ProteinGrams: 3.4, CarbsGrams: 4.8, FatGrams: 2}}

	got := Aggregate([]models.MealFood{
		{FoodID: 1, Food: oats, Servings: 1},
		{FoodID: 2, Food: milk, Servings: 2},
	})
	assertFloat(t, "calories", got.Calories, 250)
	assertFloat(t, "protein", got.ProteinGrams, 11.8)
	assertFloat(t, "carbs", got.CarbsGrams, 36.6)
	assertFloat(t, "fiber", got.FiberGrams, 4)
	assertFloat(t, "fat", got.FatGrams, 7)

	if empty := Aggregate(nil); empty != (models.Nutrients{}) {
		t.Errorf("Aggregate(nil) = %+v, want zero", empty)
	}
}

func TestMealCreateAndTotals(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	oats := e.mustFood(t, "Oats", 150, 5, 27, 4, 3)
	milk := e.mustFood(t, "Milk", 50, 3.4, 4.8, 0, 2)

	meal := e.mustMeal(t, "Breakfast",
		MealFoodRequest{FoodID: oats.ID},
		MealFoodRequest{FoodID: milk.ID, Servings: f64(2)},
	)
	if len(meal.Foods) != 2 {
		t.Fatalf("meal has %d foods, want 2", len(meal.Foods))
	}
	if meal.Foods[0].Servings != 1 {
		t.Errorf("omitted servings = %v, want 1", meal.Foods[0].Servings)
	}

	_, total, err := e.meals.Totals(ctx, meal.ID)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	assertFloat(t, "calories", total.Calories, 250)

	view := ComputeMealDisplay(*meal)
	if view.Totals.Calories != 250 || view.Totals.NetCarbsGrams != 32.6 {
		t.Errorf("totals = %+v", view.Totals)
	}
	if view.Foods[1].FoodName != "Milk" || view.Foods[1].Servings != 2 {
		t.Errorf("second constituent = %+v", view.Foods[1])
	}
}

func TestMealCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	rice := e.mustFood(t, "Rice", 130, 2.7, 28, 0.4, 0.3)

	cases := []struct {
		name string
		req  MealRequest
		kind error
	}{
		{"no name", MealRequest{Foods: []MealFoodRequest{{FoodID: rice.ID}}}, ErrInvalidInput},
		{"no foods", MealRequest{Name: "Empty"}, ErrInvalidInput},
		{"zero servings", MealRequest{Name: "Z", Foods: []MealFoodRequest{{FoodID: rice.ID, Servings: f64(0)}}}, ErrInvalidInput},
		{"duplicate food", MealRequest{Name: "D", Foods: []MealFoodRequest{{FoodID: rice.ID}, {FoodID: rice.ID}}}, ErrInvalidInput},
		{"unknown food", MealRequest{Name: "U", Foods: []MealFoodRequest{{FoodID: rice.ID}, {FoodID: 999}}}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.meals.Create(ctx, tc.req)
			assertKind(t, err, tc.kind)
		})
	}

	// The unknown-food case must not leave a half-created meal behind.
	meals, err := e.meals.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("got %d meals after failed creates, want 0", len(meals))
	}
}

func TestMealUpdateConstituents(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	egg := e.mustFood(t, "Egg", 78, 6.3, 0.6, 0, 5.3)
	toast := e.mustFood(t, "Toast", 80, 3, 15, 1, 1)
	meal := e.mustMeal(t, "Eggs on toast", MealFoodRequest{FoodID: egg.ID, Servings: f64(2)}, MealFoodRequest{FoodID: toast.ID})

	// Renaming without foods keeps the current set.
	got, err := e.meals.Update(ctx, meal.ID, MealUpdateRequest{Name: strp("Brunch")})
	if err != nil {
		t.Fatalf("Update name: %v", err)
	}
	if got.Name != "Brunch" || len(got.Foods) != 2 {
		t.Errorf("after rename: name %q, %d foods", got.Name, len(got.Foods))
	}

	// A failing replacement rolls back entirely.
	bad := []MealFoodRequest{{FoodID: egg.ID}, {FoodID: 4242}}
	_, err = e.meals.Update(ctx, meal.ID, MealUpdateRequest{Name: strp("Broken"), Foods: &bad})
	assertKind(t, err, ErrNotFound)
	still, _ := e.meals.Get(ctx, meal.ID)
	if still.Name != "Brunch" || len(still.Foods) != 2 || still.Foods[0].Servings != 2 {
		t.Errorf("meal changed after failed update: %+v", still)
	}

	// Replacement swaps the whole set.
	next := []MealFoodRequest{{FoodID: toast.ID, Servings: f64(3)}}
	got, err = e.meals.Update(ctx, meal.ID, MealUpdateRequest{Foods: &next})
	if err != nil {
		t.Fatalf("Update foods: %v", err)
	}
	if len(got.Foods) != 1 || got.Foods[0].FoodID != toast.ID || got.Foods[0].Servings != 3 {
		t.Errorf("after replace: %+v", got.Foods)
	}

	// An explicit empty list clears it.
	empty := []MealFoodRequest{}
	got, err = e.meals.Update(ctx, meal.ID, MealUpdateRequest{Foods: &empty})
	if err != nil {
		t.Fatalf("Update empty: %v", err)
	}
	if len(got.Foods) != 0 {
		t.Errorf("after clear: %d foods", len(got.Foods))
	}
	_, total, err := e.meals.Totals(ctx, meal.ID)
	if err != nil || total != (models.Nutrients{}) {
		t.Errorf("Totals of empty meal = %+v, %v", total, err)
	}

	_, err = e.meals.Update(ctx, 999, MealUpdateRequest{Name: strp("x")})
	assertKind(t, err, ErrNotFound)
}

func TestReplaceConstituents(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	a := e.mustFood(t, "A", 10, 1, 1, 0, 0)
	b := e.mustFood(t, "B", 20, 2, 2, 0, 0)
	meal := e.mustMeal(t, "AB", MealFoodRequest{FoodID: a.ID})

	if err := e.meals.ReplaceConstituents(ctx, meal.ID, []MealFoodRequest{{FoodID: b.ID, Servings: f64(0.5)}}); err != nil {
		t.Fatalf("ReplaceConstituents: %v", err)
	}
	_, total, _ := e.meals.Totals(ctx, meal.ID)
	assertFloat(t, "calories", total.Calories, 10)

	assertKind(t, e.meals.ReplaceConstituents(ctx, 999, nil), ErrNotFound)
}

func TestFoodDeleteCascadesToMeals(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	a := e.mustFood(t, "Banana", 89, 1.1, 22.8, 2.6, 0.3)
	b := e.mustFood(t, "Yogurt", 59, 10, 3.6, 0, 0.4)
	meal := e.mustMeal(t, "Bowl", MealFoodRequest{FoodID: a.ID}, MealFoodRequest{FoodID: b.ID})

	if err := e.foods.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := e.meals.Get(ctx, meal.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Foods) != 1 || got.Foods[0].FoodID != b.ID {
		t.Errorf("constituents after delete = %+v", got.Foods)
	}
}

func TestMealDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	a := e.mustFood(t, "A", 10, 1, 1, 0, 0)
	meal := e.mustMeal(t, "Solo", MealFoodRequest{FoodID: a.ID})

	if err := e.meals.Delete(ctx, meal.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var n int64
	e.db.Model(&models.MealFood{}).Count(&n)
	if n != 0 {
		t.Errorf("%d constituents left after meal delete", n)
	}
	assertKind(t, e.meals.Delete(ctx, meal.ID), ErrNotFound)
}

func TestAggregateTwoServingsPlusOne(t *testing.T) {
	a := models.Food{Nutrients: models.Nutrients{Calories: 100}}
	b := models.Food{Nutrients: models.Nutrients{Calories: 50}}
	got := Aggregate([]models.MealFood{{Food: a, Servings: 2}, {Food: b, Servings: 1}})
	assertFloat(t, "calories", got.Calories, 250)
}
