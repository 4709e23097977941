package models

import "time"

// UnlockedAchievement is persisted once per id, first time its goal is met.
// Append-only: never removed, UnlockedAt never rewritten.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// AchievementStatus is the live view served to the client: every defined
// achievement with its progress toward goal.
type AchievementStatus struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        float64    `json:"goal"`
	Progress    float64    `json:"progress"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}
