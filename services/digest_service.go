package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vitalog/models"
	"vitalog/utils"
)

// DigestService emails a plain-text summary of the current insight
// report on demand.
type DigestService struct {
	insights *InsightService
}

func NewDigestService(insights *InsightService) *DigestService {
	return &DigestService{insights: insights}
}

func (d *DigestService) SendWeeklyDigest(ctx context.Context, user *models.User) error {
	report, err := d.insights.Generate(ctx, user.ID, time.Now())
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hola %s,\n\n", user.FullName))
	if !report.HasData {
		sb.WriteString("Esta semana no registraste ningún check-in. ¡La próxima cuenta!\n")
	} else {
		sb.WriteString("Tu semana en números (últimos 7 días):\n")
		sb.WriteString(fmt.Sprintf("  Sueño medio: %.1f h\n", report.Avg7.Sleep))
		sb.WriteString(fmt.Sprintf("  Estrés medio: %.1f / 5\n", report.Avg7.Stress))
		sb.WriteString(fmt.Sprintf("  Movimiento medio: %.0f min\n", report.Avg7.Movement))
		sb.WriteString(fmt.Sprintf("  Puntuación media: %.0f / 100\n", report.Avg7.Score))
		sb.WriteString(fmt.Sprintf("  Constancia (30 días): %.0f%%\n\n", report.Consistency))
		for _, card := range report.Cards {
			sb.WriteString("  · " + card.Message + "\n")
		}
	}
	sb.WriteString("\nSiguiente paso: " + report.NextStep.Message + "\n")

	return utils.SendEmail(user.Email, "Tu resumen semanal de Vitalog", sb.String())
}
