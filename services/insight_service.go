package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"vitalog/models"
)

const maxInsightCards = 3

type WindowAverages struct {
	Sleep    float64 `json:"sleep"`
	Stress   float64 `json:"stress"`
	Cravings float64 `json:"cravings"`
	Movement float64 `json:"movement"`
	Score    float64 `json:"score"`
	Days     int     `json:"days"` // days with a check-in in the window
}

type InsightCard struct {
	Kind    string `json:"kind"` // "sleep" | "stress" | ...
	Type    string `json:"type"` // "warning" | "success" | "info"
	Message string `json:"message"`
}

type NextStep struct {
	Focus   FocusArea `json:"focus"`
	Message string    `json:"message"`
}

type InsightReport struct {
	HasData     bool               `json:"hasData"`
	Avg7        WindowAverages     `json:"avg7"`
	Avg30       WindowAverages     `json:"avg30"`
	Consistency float64            `json:"consistency"` // % of last 30 days with a check-in
	Cards       []InsightCard      `json:"cards"`
	NextStep    NextStep           `json:"nextStep"`
	ActivePlan  *models.WeeklyPlan `json:"activePlan,omitempty"`
}

type InsightService struct {
	store *RecordStore
}

func NewInsightService(store *RecordStore) *InsightService {
	return &InsightService{store: store}
}

func averagesOver(dates []string, checkins map[string]*models.Checkin, checklists map[string]models.Checklist) WindowAverages {
	var agg WindowAverages
	for _, d := range dates {
		c := checkins[d]
		if c == nil {
			continue
		}
		agg.Days++
		agg.Sleep += c.SleepHours
		agg.Stress += c.Stress
		agg.Cravings += c.Cravings
		agg.Movement += c.MovementMinutes
		agg.Score += float64(WellnessScore(checklists[d], c))
	}
	if agg.Days == 0 {
		return agg
	}
	n := float64(agg.Days)
	agg.Sleep = round1(agg.Sleep / n)
	agg.Stress = round1(agg.Stress / n)
	agg.Cravings = round1(agg.Cravings / n)
	agg.Movement = round1(agg.Movement / n)
	agg.Score = round1(agg.Score / n)
	return agg
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Generate derives up to 3 insight cards and exactly one recommended
// next step from the last 30 days. The next-step priority mirrors the
// risk predictor's focus ordering, extended with consistency and a
// steady-state fallback. With zero check-ins it reports the no-data
// state instead of computing averages.
func (s *InsightService) Generate(ctx context.Context, userID uint, today time.Time) (*InsightReport, error) {
	dates := LastNDateKeys(today, 30)
	checkins := s.store.GetCheckinRange(ctx, userID, dates)
	checklists := s.store.GetChecklistRange(ctx, userID, dates)
	plan, err := s.store.GetActivePlan(ctx, userID)
	if err != nil {
		debugf("active plan read failed, continuing without it: %v", err)
		plan = nil
	}

	report := &InsightReport{ActivePlan: plan}
	if len(checkins) == 0 {
		report.Cards = []InsightCard{{
			Kind: "empty", Type: "info",
			Message: "Aún no hay datos. Registra tu primer check-in para ver tus tendencias.",
		}}
		report.NextStep = NextStep{
			Focus:   FocusNone,
			Message: "Haz tu primer check-in de hoy.",
		}
		return report, nil
	}

	report.HasData = true
	report.Avg7 = averagesOver(dates[:7], checkins, checklists)
	report.Avg30 = averagesOver(dates, checkins, checklists)
	report.Consistency = round1(float64(len(checkins)) / 30 * 100)

	report.Cards = buildCards(report)
	report.NextStep = pickNextStep(report)
	return report, nil
}

// buildCards walks the conditions in priority order and stops at the cap.
func buildCards(r *InsightReport) []InsightCard {
	var cards []InsightCard
	add := func(kind, typ, msg string) {
		if len(cards) < maxInsightCards {
			cards = append(cards, InsightCard{Kind: kind, Type: typ, Message: msg})
		}
	}

	a := r.Avg7
	if a.Days > 0 {
		if a.Sleep < 6 {
			add("sleep", "warning", fmt.Sprintf("Tu promedio de sueño esta semana es %.1fh. Intenta acercarte a 7h.", a.Sleep))
		}
		if a.Stress >= 4 {
			add("stress", "warning", "Tu estrés se ha mantenido alto esta semana. Reserva un momento para desconectar.")
		}
		if a.Cravings >= 2 {
			add("cravings", "warning", "Los antojos han estado fuertes estos días. Tener un plan a mano ayuda.")
		}
		if a.Movement < 15 {
			add("movement", "warning", fmt.Sprintf("Promedias %.0f min de movimiento al día. Una caminata corta ya suma.", a.Movement))
		}
		if a.Score >= r.Avg30.Score+5 {
			add("trend", "success", "Tu puntuación semanal va por encima de tu media del mes. Buen impulso.")
		}
	}
	if r.Consistency > 80 {
		add("consistency", "success", fmt.Sprintf("Has registrado el %.0f%% de los últimos 30 días. Gran constancia.", r.Consistency))
	}
	if len(cards) == 0 {
		add("steady", "info", "Todo se ve estable. Sigue con tu rutina actual.")
	}
	return cards
}

// pickNextStep chooses one recommendation, same ordering as the cravings
// risk focus: sleep > stress > cravings > movement, then consistency,
// then steady-state praise.
func pickNextStep(r *InsightReport) NextStep {
	a := r.Avg7
	planNote := ""
	if r.ActivePlan != nil && r.ActivePlan.Title != "" {
		planNote = fmt.Sprintf(" Tu plan «%s» puede ayudarte.", r.ActivePlan.Title)
	}
	switch {
	case a.Days > 0 && a.Sleep < 6:
		return NextStep{Focus: FocusSleep, Message: "Prioriza dormir: adelanta tu hora de acostarte 30 minutos." + planNote}
	case a.Days > 0 && a.Stress >= 4:
		return NextStep{Focus: FocusStress, Message: "Dedica 10 minutos hoy a algo que te relaje." + planNote}
	case a.Days > 0 && a.Cravings >= 2:
		return NextStep{Focus: FocusCravings, Message: "Prepara una alternativa para tu próximo antojo." + planNote}
	case a.Days > 0 && a.Movement < 15:
		return NextStep{Focus: FocusMovement, Message: "Sal a caminar 20 minutos hoy." + planNote}
	case r.Consistency < 50:
		return NextStep{Focus: FocusNone, Message: "Intenta registrar tu check-in más días: la constancia es la base."}
	default:
		return NextStep{Focus: FocusNone, Message: "Vas muy bien. Mantén tu rutina un día más."}
	}
}
