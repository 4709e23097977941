package services

import (
	"context"
	"time"

	"vitalog/models"
)

// AchievementContext aggregates the statistics achievement goals are
// written against, over a bounded lookback. Malformed dates inside the
// window decode to absent and simply do not count.
type AchievementContext struct {
	TotalCheckins   int // within the lookback window
	CurrentStreak   int
	CheckinsLast7   int
	PerfectDays     int // checklist all done AND check-in present, last 30d
	LongestSleepRun int // consecutive days with sleep >= 7h, last 30d
	ActiveDaysLast7 int // movement >= 30min
	CalmDaysLast7   int // cravings <= 1
}

type AchievementDef struct {
	ID          string
	Title       string
	Description string
	Goal        float64
	Progress    func(ctx AchievementContext) float64
}

// The compiled-in catalog. IDs are stable: they key the persisted
// unlocked set.
var achievementDefs = []AchievementDef{
	{
		ID: "first_checkin", Title: "Primer paso",
		Description: "Completa tu primer check-in diario.",
		Goal:        1,
		Progress:    func(c AchievementContext) float64 { return float64(c.TotalCheckins) },
	},
	{
		ID: "streak_3", Title: "Racha de 3 días",
		Description: "Haz check-in 3 días seguidos.",
		Goal:        3,
		Progress:    func(c AchievementContext) float64 { return float64(c.CurrentStreak) },
	},
	{
		ID: "streak_7", Title: "Una semana entera",
		Description: "Haz check-in 7 días seguidos.",
		Goal:        7,
		Progress:    func(c AchievementContext) float64 { return float64(c.CurrentStreak) },
	},
	{
		ID: "streak_30", Title: "Un mes imparable",
		Description: "Haz check-in 30 días seguidos.",
		Goal:        30,
		Progress:    func(c AchievementContext) float64 { return float64(c.CurrentStreak) },
	},
	{
		ID: "checkins_30", Title: "Constancia",
		Description: "Acumula 30 check-ins.",
		Goal:        30,
		Progress:    func(c AchievementContext) float64 { return float64(c.TotalCheckins) },
	},
	{
		ID: "full_week", Title: "Semana completa",
		Description: "Haz check-in cada día de los últimos 7.",
		Goal:        7,
		Progress:    func(c AchievementContext) float64 { return float64(c.CheckinsLast7) },
	},
	{
		ID: "perfect_10", Title: "Días perfectos",
		Description: "Suma 10 días con checklist completa y check-in.",
		Goal:        10,
		Progress:    func(c AchievementContext) float64 { return float64(c.PerfectDays) },
	},
	{
		ID: "sleep_run_5", Title: "Bien dormido",
		Description: "Duerme 7h o más durante 5 días seguidos.",
		Goal:        5,
		Progress:    func(c AchievementContext) float64 { return float64(c.LongestSleepRun) },
	},
	{
		ID: "active_week", Title: "Semana activa",
		Description: "Muévete 30 minutos o más en 5 de los últimos 7 días.",
		Goal:        5,
		Progress:    func(c AchievementContext) float64 { return float64(c.ActiveDaysLast7) },
	},
	{
		ID: "calm_week", Title: "Semana en calma",
		Description: "Mantén los antojos bajos en 5 de los últimos 7 días.",
		Goal:        5,
		Progress:    func(c AchievementContext) float64 { return float64(c.CalmDaysLast7) },
	},
}

type AchievementService struct {
	store    *RecordStore
	streaks  *StreakService
	lookback int
}

func NewAchievementService(store *RecordStore, streaks *StreakService) *AchievementService {
	return &AchievementService{store: store, streaks: streaks, lookback: 60}
}

func (s *AchievementService) buildContext(ctx context.Context, userID uint, today time.Time) AchievementContext {
	dates := LastNDateKeys(today, s.lookback)
	checkins := s.store.GetCheckinRange(ctx, userID, dates)

	last30 := dates
	if len(last30) > 30 {
		last30 = last30[:30]
	}
	checklists := s.store.GetChecklistRange(ctx, userID, last30)

	out := AchievementContext{
		TotalCheckins: len(checkins),
		CurrentStreak: ComputeStreaks(presenceFrom(dates, checkins)).Current,
	}

	for _, d := range dates[:min(7, len(dates))] {
		c := checkins[d]
		if c == nil {
			continue
		}
		out.CheckinsLast7++
		if c.MovementMinutes >= 30 {
			out.ActiveDaysLast7++
		}
		if c.Cravings <= 1 {
			out.CalmDaysLast7++
		}
	}

	run := 0
	for i := len(last30) - 1; i >= 0; i-- { // oldest → newest
		d := last30[i]
		c := checkins[d]
		if c != nil && checklists[d].AllDone() {
			out.PerfectDays++
		}
		if c != nil && c.SleepHours >= 7 {
			run++
			if run > out.LongestSleepRun {
				out.LongestSleepRun = run
			}
		} else {
			run = 0
		}
	}
	return out
}

func presenceFrom(dates []string, checkins map[string]*models.Checkin) []bool {
	presence := make([]bool, len(dates))
	for i, d := range dates {
		presence[i] = checkins[d] != nil
	}
	return presence
}

// Evaluate re-runs every locked achievement against fresh aggregates and
// durably records any that crossed their goal before returning them for
// celebratory display. Unlocking is idempotent: already-unlocked ids are
// never touched, so UnlockedAt survives re-evaluation.
func (s *AchievementService) Evaluate(ctx context.Context, userID uint, today time.Time) ([]models.UnlockedAchievement, error) {
	unlocked, err := s.store.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		have[u.ID] = true
	}

	agg := s.buildContext(ctx, userID, today)

	var newly []models.UnlockedAchievement
	for _, def := range achievementDefs {
		if have[def.ID] {
			continue
		}
		if def.Progress(agg) >= def.Goal {
			newly = append(newly, models.UnlockedAchievement{
				ID:          def.ID,
				Title:       def.Title,
				Description: def.Description,
				UnlockedAt:  time.Now(),
			})
		}
	}
	if len(newly) == 0 {
		return nil, nil
	}
	if err := s.store.SaveUnlocked(ctx, userID, append(unlocked, newly...)); err != nil {
		return nil, err
	}
	return newly, nil
}

// Status reports every defined achievement with live progress, clamped to
// its goal so locked cards never show >100%.
func (s *AchievementService) Status(ctx context.Context, userID uint, today time.Time) ([]models.AchievementStatus, error) {
	unlocked, err := s.store.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.UnlockedAchievement, len(unlocked))
	for _, u := range unlocked {
		byID[u.ID] = u
	}

	agg := s.buildContext(ctx, userID, today)

	out := make([]models.AchievementStatus, 0, len(achievementDefs))
	for _, def := range achievementDefs {
		st := models.AchievementStatus{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Goal:        def.Goal,
		}
		if u, ok := byID[def.ID]; ok {
			st.Unlocked = true
			st.Progress = def.Goal
			t := u.UnlockedAt
			st.UnlockedAt = &t
		} else {
			st.Progress = clamp(def.Progress(agg), 0, def.Goal)
		}
		out = append(out, st)
	}
	return out, nil
}
