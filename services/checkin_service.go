package services

import (
	"context"
	"fmt"
	"time"

	"vitalog/models"
)

// CheckinService is the write path: it persists a day's records and runs
// the full derivation pipeline afterwards, so every screen reads the same
// derived values instead of re-deriving its own.
type CheckinService struct {
	store        *RecordStore
	streaks      *StreakService
	achievements *AchievementService
}

func NewCheckinService(store *RecordStore, streaks *StreakService, achievements *AchievementService) *CheckinService {
	return &CheckinService{store: store, streaks: streaks, achievements: achievements}
}

type SaveCheckinResult struct {
	Checkin       models.Checkin               `json:"checkin"`
	Score         int                          `json:"score"`
	Risk          CravingsRisk                 `json:"risk"`
	Streaks       Streaks                      `json:"streaks"`
	NewlyUnlocked []models.UnlockedAchievement `json:"newlyUnlocked,omitempty"`
}

// SaveCheckin overwrites the date's check-in in place (no edit history),
// then recomputes score, risk and achievements. Newly unlocked
// achievements and high risk fan out through the alert bus; alerting
// failures never fail the save.
func (s *CheckinService) SaveCheckin(ctx context.Context, userID uint, date time.Time, in models.Checkin) (*SaveCheckinResult, error) {
	dateKey := DateKey(date)
	saved, err := s.store.SaveCheckin(ctx, userID, dateKey, in)
	if err != nil {
		return nil, fmt.Errorf("save check-in: %w", err)
	}

	cl, err := s.store.GetChecklist(ctx, userID, dateKey)
	if err != nil {
		cl = models.Checklist{}
	}
	yesterday, _ := s.store.GetCheckin(ctx, userID, DateKey(date.AddDate(0, 0, -1)))

	res := &SaveCheckinResult{
		Checkin: saved,
		Score:   WellnessScore(cl, &saved),
		Risk:    PredictCravingsRisk(saved, yesterday),
		Streaks: s.streaks.CheckinStreaks(ctx, userID, date),
	}

	newly, err := s.achievements.Evaluate(ctx, userID, date)
	if err != nil {
		debugf("achievement evaluation failed after save: %v", err)
	}
	res.NewlyUnlocked = newly

	for _, u := range newly {
		EmitAlert(userID, "achievement", fmt.Sprintf("¡Logro desbloqueado: %s!", u.Title))
	}
	if res.Risk.Score >= RiskThreshold {
		EmitAlert(userID, "risk", riskMessage(res.Risk))
	}
	return res, nil
}

func riskMessage(r CravingsRisk) string {
	base := fmt.Sprintf("Riesgo de antojos %s (%d/100) para mañana.", r.Label, r.Score)
	switch r.RecommendedFocus {
	case FocusSleep:
		return base + " Dormir bien esta noche es tu mejor palanca."
	case FocusStress:
		return base + " Bajar el estrés hoy marcará la diferencia."
	case FocusCravings:
		return base + " Ten tu alternativa preparada."
	case FocusMovement:
		return base + " Un poco de movimiento hoy te protege mañana."
	default:
		return base
	}
}

// DaySummary is everything a day screen shows, derived in one pass.
type DaySummary struct {
	Date           string             `json:"date"`
	Checkin        *models.Checkin    `json:"checkin"`
	Checklist      models.Checklist   `json:"checklist"`
	Meals          []models.MealEntry `json:"meals"`
	MealTotals     models.MealTotals  `json:"mealTotals"`
	Score          int                `json:"score"`
	Risk           *CravingsRisk      `json:"risk,omitempty"`
	Streaks        Streaks            `json:"streaks"`
	PerfectStreaks Streaks            `json:"perfectStreaks"`
}

func (s *CheckinService) DaySummary(ctx context.Context, userID uint, date time.Time) (*DaySummary, error) {
	dateKey := DateKey(date)

	checkin, err := s.store.GetCheckin(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}
	cl, err := s.store.GetChecklist(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.GetMealsForDate(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}

	out := &DaySummary{
		Date:           dateKey,
		Checkin:        checkin,
		Checklist:      cl,
		Meals:          meals,
		Score:          WellnessScore(cl, checkin),
		Streaks:        s.streaks.CheckinStreaks(ctx, userID, date),
		PerfectStreaks: s.streaks.PerfectStreaks(ctx, userID, date),
	}
	for _, m := range meals {
		out.MealTotals.Calories += m.Totals.Calories
		out.MealTotals.ProteinGrams += m.Totals.ProteinGrams
		out.MealTotals.CarbsGrams += m.Totals.CarbsGrams
		out.MealTotals.FatGrams += m.Totals.FatGrams
	}
	if checkin != nil {
		yesterday, _ := s.store.GetCheckin(ctx, userID, DateKey(date.AddDate(0, 0, -1)))
		risk := PredictCravingsRisk(*checkin, yesterday)
		out.Risk = &risk
	}
	return out, nil
}
