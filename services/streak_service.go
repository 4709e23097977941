package services

import (
	"context"
	"time"
)

// Streaks holds consecutive-day counts over a presence series.
// Best is always >= Current.
type Streaks struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// ComputeStreaks scans a presence series ordered most-recent first
// (index 0 = today). A false at index 0 is skipped rather than breaking
// the run: today not yet logged must not retroactively end yesterday's
// streak. Best is found on the chronological ordering.
func ComputeStreaks(presence []bool) Streaks {
	current := 0
	start := 0
	if len(presence) > 0 && !presence[0] {
		start = 1
	}
	for i := start; i < len(presence); i++ {
		if !presence[i] {
			break
		}
		current++
	}

	best, run := 0, 0
	for i := len(presence) - 1; i >= 0; i-- { // oldest → newest
		if presence[i] {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	if current > best {
		best = current
	}
	return Streaks{Current: current, Best: best}
}

// StreakService derives presence series from the record store. The
// lookback window is a sampling limit, not a cap; callers pick it large
// enough that saturation is implausible.
type StreakService struct {
	store    *RecordStore
	lookback int
}

func NewStreakService(store *RecordStore, lookback int) *StreakService {
	if lookback <= 0 {
		lookback = 60
	}
	return &StreakService{store: store, lookback: lookback}
}

// CheckinStreaks counts days with a check-in record.
func (s *StreakService) CheckinStreaks(ctx context.Context, userID uint, today time.Time) Streaks {
	dates := LastNDateKeys(today, s.lookback)
	checkins := s.store.GetCheckinRange(ctx, userID, dates)
	presence := make([]bool, len(dates))
	for i, d := range dates {
		presence[i] = checkins[d] != nil
	}
	return ComputeStreaks(presence)
}

// PerfectStreaks counts days where the checklist is fully done and a
// check-in exists.
func (s *StreakService) PerfectStreaks(ctx context.Context, userID uint, today time.Time) Streaks {
	dates := LastNDateKeys(today, s.lookback)
	checkins := s.store.GetCheckinRange(ctx, userID, dates)
	checklists := s.store.GetChecklistRange(ctx, userID, dates)
	presence := make([]bool, len(dates))
	for i, d := range dates {
		presence[i] = checkins[d] != nil && checklists[d].AllDone()
	}
	return ComputeStreaks(presence)
}
