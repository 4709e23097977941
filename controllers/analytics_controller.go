package controllers

import (
	"net/http"
	"time"

	"vitalog/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Checkins *services.CheckinService
	Insights *services.InsightService
	Digest   *services.DigestService
}

func NewAnalyticsController(checkins *services.CheckinService, insights *services.InsightService, digest *services.DigestService) *AnalyticsController {
	return &AnalyticsController{Checkins: checkins, Insights: insights, Digest: digest}
}

func (h *AnalyticsController) GetDaySummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	out, err := h.Checkins.DaySummary(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) GetInsights(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Insights.Generate(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) EmailDigest(c *gin.Context) {
	email, _ := c.MustGet("email").(string)
	user, err := services.FindUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := h.Digest.SendWeeklyDigest(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "digest sent"})
}
