package utils

import (
	"math"
	"strconv"
)

// kcal per gram
const (
	ProteinKcalPerGram = 4.0
	CarbsKcalPerGram   = 4.0
	FatKcalPerGram     = 9.0
)

// NetCarbs is carbs minus fiber. Negative results are passed through.
func NetCarbs(carbsG, fiberG float64) float64 {
	return carbsG - fiberG
}

// MacroPercentage is the share of totalCalories contributed by grams of a
// macro. It is 0 whenever totalCalories is not positive.
func MacroPercentage(grams, kcalPerGram, totalCalories float64) float64 {
	if totalCalories <= 0 {
		return 0
	}
	return grams * kcalPerGram / totalCalories * 100
}

// MacroPercentages is the display form of the three calorie shares. They are
// computed independently against recorded calories and need not sum to 100.
type MacroPercentages struct {
	ProteinPercentage string `json:"protein_percentage"`
	CarbsPercentage   string `json:"carbs_percentage"`
	FatPercentage     string `json:"fat_percentage"`
}

func Percentages(proteinG, netCarbsG, fatG, totalCalories float64) MacroPercentages {
	return MacroPercentages{
		ProteinPercentage: FormatPercentage(MacroPercentage(proteinG, ProteinKcalPerGram, totalCalories), totalCalories),
		CarbsPercentage:   FormatPercentage(MacroPercentage(netCarbsG, CarbsKcalPerGram, totalCalories), totalCalories),
		FatPercentage:     FormatPercentage(MacroPercentage(fatG, FatKcalPerGram, totalCalories), totalCalories),
	}
}

// FormatPercentage renders pct with one decimal, or "0" when there are no
// calories to divide by.
func FormatPercentage(pct, totalCalories float64) string {
	if totalCalories <= 0 {
		return "0"
	}
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

// Round2 rounds gram and calorie totals for display.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
