package models

import "time"

// Checkin is the canonical once-daily self-report. Values are clamped on
// save: sleep [0,12], stress [1,5], cravings [0,3], movement [0,300].
type Checkin struct {
	SleepHours      float64   `json:"sleepHours"`
	Stress          float64   `json:"stress"`
	Cravings        float64   `json:"cravings"`
	MovementMinutes float64   `json:"movementMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Checklist is the fixed 3-item daily action list. Index N means
// "action N completed today". Independent of check-in presence.
type Checklist [3]bool

func (cl Checklist) AllDone() bool {
	return cl[0] && cl[1] && cl[2]
}

func (cl Checklist) DoneCount() int {
	n := 0
	for _, v := range cl {
		if v {
			n++
		}
	}
	return n
}
