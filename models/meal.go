package models

import "time"

type MealSource string

const (
	MealSourcePhoto   MealSource = "photo"
	MealSourceLabel   MealSource = "label"
	MealSourceBarcode MealSource = "barcode"
	MealSourceManual  MealSource = "manual"
)

type MealTotals struct {
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbsGrams   float64 `json:"carbsGrams"`
	FatGrams     float64 `json:"fatGrams"`
}

// MealEntry is the canonical shape every historical meal schema is
// normalized into. Zero or more per date.
type MealEntry struct {
	ID        string     `json:"id"`
	DateKey   string     `json:"dateKey"`
	Source    MealSource `json:"source"`
	PhotoURL  string     `json:"photoUrl,omitempty"`
	Totals    MealTotals `json:"totals"`
	CreatedAt time.Time  `json:"createdAt"`
}
