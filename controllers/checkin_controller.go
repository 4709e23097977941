package controllers

import (
	"io"
	"net/http"

	"vitalog/models"
	"vitalog/services"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	Svc   *services.CheckinService
	Store *services.RecordStore
}

func NewCheckinController(svc *services.CheckinService, store *services.RecordStore) *CheckinController {
	return &CheckinController{Svc: svc, Store: store}
}

func (h *CheckinController) GetCheckin(c *gin.Context) {
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

	checkin, err := h.Store.GetCheckin(c.Request.Context(), userID, services.DateKey(date))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": services.DateKey(date), "checkin": checkin})
}

// SaveCheckin reads the raw body instead of binding a struct so that
// legacy alias field names keep working.
func (h *CheckinController) SaveCheckin(c *gin.Context) {
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

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	checkin := services.DecodeCheckinJSON(body)
	if checkin == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sleepHours, stress, cravings and movementMinutes are required"})
		return
	}

	res, err := h.Svc.SaveCheckin(c.Request.Context(), userID, date, *checkin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CheckinController) GetChecklist(c *gin.Context) {
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

	cl, err := h.Store.GetChecklist(c.Request.Context(), userID, services.DateKey(date))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": services.DateKey(date), "checklist": cl})
}

func (h *CheckinController) PutChecklist(c *gin.Context) {
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

	var req struct {
		Checklist models.Checklist `json:"checklist" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SaveChecklist(c.Request.Context(), userID, services.DateKey(date), req.Checklist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
