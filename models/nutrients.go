package models

import (
	"errors"
	"strings"

	"github.com/marcus-bailey/nom-nom-tracker/utils"
)

// Nutrients is the macro profile of one reference serving.
type Nutrients struct {
	Calories     float64 `gorm:"not null" json:"calories"`
	ProteinGrams float64 `gorm:"not null" json:"protein_grams"`
	CarbsGrams   float64 `gorm:"not null" json:"carbs_grams"`
	FiberGrams   float64 `gorm:"not null" json:"fiber_grams"`
	FatGrams     float64 `gorm:"not null" json:"fat_grams"`
}

// Scale multiplies every field by servings.
func (n Nutrients) Scale(servings float64) Nutrients {
	return Nutrients{
		Calories:     n.Calories * servings,
		ProteinGrams: n.ProteinGrams * servings,
		CarbsGrams:   n.CarbsGrams * servings,
		FiberGrams:   n.FiberGrams * servings,
		FatGrams:     n.FatGrams * servings,
	}
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories:     n.Calories + o.Calories,
		ProteinGrams: n.ProteinGrams + o.ProteinGrams,
		CarbsGrams:   n.CarbsGrams + o.CarbsGrams,
		FiberGrams:   n.FiberGrams + o.FiberGrams,
		FatGrams:     n.FatGrams + o.FatGrams,
	}
}

func (n Nutrients) NetCarbs() float64 { return utils.NetCarbs(n.CarbsGrams, n.FiberGrams) }

// Validate rejects negative calories or grams.
func (n Nutrients) Validate() error {
	var bad []string
	if n.Calories < 0 {
		bad = append(bad, "calories")
	}
	if n.ProteinGrams < 0 {
		bad = append(bad, "protein_grams")
	}
	if n.CarbsGrams < 0 {
		bad = append(bad, "carbs_grams")
	}
	if n.FiberGrams < 0 {
		bad = append(bad, "fiber_grams")
	}
	if n.FatGrams < 0 {
		bad = append(bad, "fat_grams")
	}
	if len(bad) > 0 {
		return errors.New(strings.Join(bad, ", ") + " must be non-negative")
	}
	return nil
}
