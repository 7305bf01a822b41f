package services

import "github.com/marcus-bailey/nom-nom-tracker/models"

func catalogFood(name string, kcal, protein, carbs, fiber, fat float64, size, unit string) models.Food {
	return models.Food{
		Name:        name,
		Nutrients:   models.Nutrients{Calories: kcal, ProteinGrams: protein, CarbsGrams: carbs, FiberGrams: fiber, FatGrams: fat},
		ServingSize: size,
		ServingUnit: unit,
	}
}

// referenceCatalog is loaded by FoodService.Seed. Values are per serving.
var referenceCatalog = []models.Food{
	catalogFood("Chicken Breast (cooked)", 165, 31, 0, 0, 3.6, "100", "g"),
	catalogFood("Salmon (cooked)", 206, 22, 0, 0, 13, "100", "g"),
	catalogFood("Ground Beef 85/15 (cooked)", 215, 26, 0, 0, 12, "100", "g"),
	catalogFood("Eggs (large)", 72, 6, 0.4, 0, 5, "1", "egg"),
	catalogFood("Greek Yogurt (plain, nonfat)", 59, 10, 3.6, 0, 0.4, "100", "g"),
	catalogFood("Tofu (firm)", 144, 17, 3, 2, 9, "100", "g"),
	catalogFood("Brown Rice (cooked)", 112, 2.6, 24, 1.8, 0.9, "100", "g"),
	catalogFood("White Rice (cooked)", 130, 2.7, 28, 0.4, 0.3, "100", "g"),
	catalogFood("Sweet Potato (baked)", 90, 2, 21, 3.3, 0.2, "100", "g"),
	catalogFood("Oatmeal (cooked)", 71, 2.5, 12, 1.7, 1.5, "100", "g"),
	catalogFood("Quinoa (cooked)", 120, 4.4, 21, 2.8, 1.9, "100", "g"),
	catalogFood("Whole Wheat Bread", 247, 13, 41, 7, 3.4, "100", "g"),
	catalogFood("Banana", 89, 1.1, 23, 2.6, 0.3, "1", "medium"),
	catalogFood("Apple", 52, 0.3, 14, 2.4, 0.2, "1", "medium"),
	catalogFood("Broccoli (cooked)", 35, 2.4, 7, 3.3, 0.4, "100", "g"),
	catalogFood("Spinach (raw)", 23, 2.9, 3.6, 2.2, 0.4, "100", "g"),
	catalogFood("Carrots (raw)", 41, 0.9, 10, 2.8, 0.2, "100", "g"),
	catalogFood("Bell Pepper (raw)", 31, 1, 6, 2.1, 0.3, "100", "g"),
	catalogFood("Kale (raw)", 35, 2.9, 4.4, 4.1, 1.5, "100", "g"),
	catalogFood("Avocado", 160, 2, 8.5, 6.7, 15, "100", "g"),
	catalogFood("Almonds", 579, 21, 22, 12.5, 50, "100", "g"),
	catalogFood("Olive Oil", 884, 0, 0, 0, 100, "100", "ml"),
	catalogFood("Peanut Butter", 588, 25, 20, 6, 50, "100", "g"),
	catalogFood("Cheddar Cheese", 403, 25, 1.3, 0, 33, "100", "g"),
	catalogFood("Whole Milk", 61, 3.2, 4.8, 0, 3.3, "100", "ml"),
	catalogFood("Skim Milk", 34, 3.4, 5, 0, 0.1, "100", "ml"),
	catalogFood("Whey Protein Powder", 400, 80, 8, 2, 8, "100", "g"),
}
