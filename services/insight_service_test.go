package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate_NoDataState(t *testing.T) {
	svc := NewInsightService(NewRecordStore(NewMemoryKV()))

	report, err := svc.Generate(context.Background(), 1, time.Now())
	require.NoError(t, err)
	require.False(t, report.HasData)
	require.Len(t, report.Cards, 1)
	require.Equal(t, "empty", report.Cards[0].Kind)
	require.Equal(t, FocusNone, report.NextStep.Focus)
	require.Zero(t, report.Avg7.Days)
	require.Zero(t, report.Avg30.Days)
}

func TestGenerate_LowSleepDrivesCardAndNextStep(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	for i := 0; i < 7; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":5,"stress":2,"cravings":0,"movementMinutes":40}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.True(t, report.HasData)
	require.Equal(t, 5.0, report.Avg7.Sleep)

	require.Equal(t, "sleep", report.Cards[0].Kind)
	require.Equal(t, "warning", report.Cards[0].Type)
	require.Equal(t, FocusSleep, report.NextStep.Focus)
}

func TestGenerate_PriorityOrderSleepBeatsStress(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	// both sleep and stress are bad → sleep must win the next step
	for i := 0; i < 7; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":5,"stress":5,"cravings":2,"movementMinutes":5}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.Equal(t, FocusSleep, report.NextStep.Focus)
}

func TestGenerate_CardsCappedAtThree(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	// every warning condition fires at once
	for i := 0; i < 30; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":4,"stress":5,"cravings":3,"movementMinutes":0}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, report.Cards, 3)
}

func TestGenerate_ConsistencyCongratulation(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	// 27/30 days logged, everything healthy → consistency success card
	for i := 0; i < 27; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":8,"stress":2,"cravings":0,"movementMinutes":40}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.Equal(t, 90.0, report.Consistency)

	var kinds []string
	for _, card := range report.Cards {
		kinds = append(kinds, card.Kind)
	}
	require.Contains(t, kinds, "consistency")
	require.Equal(t, FocusNone, report.NextStep.Focus)
}

func TestGenerate_SteadyStateFallback(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	// healthy but sparse history: no warnings, consistency below the
	// congratulation bar but above the nag bar
	for i := 0; i < 18; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":8,"stress":2,"cravings":0,"movementMinutes":40}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.Equal(t, FocusNone, report.NextStep.Focus)
	require.NotEmpty(t, report.NextStep.Message)
}

func TestGenerate_ActivePlanIsSurfaced(t *testing.T) {
	kv := NewMemoryKV()
	svc := NewInsightService(NewRecordStore(kv))
	now := time.Now()

	seedRaw(t, kv, planKey(1), `{"title":"Semana de sueño","focus":"sleep","actions":["acostarse antes"]}`)
	for i := 0; i < 7; i++ {
		seedCheckin(t, kv, 1, DateKey(now.AddDate(0, 0, -i)),
			`{"sleepHours":5,"stress":2,"cravings":0,"movementMinutes":40}`)
	}

	report, err := svc.Generate(context.Background(), 1, now)
	require.NoError(t, err)
	require.NotNil(t, report.ActivePlan)
	require.Contains(t, report.NextStep.Message, "Semana de sueño")
}
