package models

// WeeklyPlan is the active weekly plan snapshot written by the planning
// screens. The engine only reads it, as optional context for insights.
type WeeklyPlan struct {
	Title     string   `json:"title"`
	Focus     string   `json:"focus"` // "sleep" | "stress" | "cravings" | "movement"
	StartDate string   `json:"startDate"`
	Actions   []string `json:"actions"`
}
