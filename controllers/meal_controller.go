package controllers

import (
	"net/http"

	"vitalog/models"
	"vitalog/services"
	"vitalog/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Store *services.RecordStore
}

func NewMealController(store *services.RecordStore) *MealController {
	return &MealController{Store: store}
}

func (h *MealController) ListMeals(c *gin.Context) {
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

	meals, err := h.Store.GetMealsForDate(c.Request.Context(), userID, services.DateKey(date))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": services.DateKey(date), "meals": meals})
}

type addMealInput struct {
	Source string            `json:"source"`
	Totals models.MealTotals `json:"totals" binding:"required"`
}

func (h *MealController) AddMeal(c *gin.Context) {
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

	var input addMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.MealEntry{
		DateKey: services.DateKey(date),
		Source:  models.MealSource(input.Source),
		Totals:  input.Totals,
	}
	saved, err := h.Store.AddMeal(c.Request.Context(), userID, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

type mealPhotoInput struct {
	Image  string            `json:"image" binding:"required"` // data-URI base64
	Totals models.MealTotals `json:"totals"`
}

// AddMealPhoto stores the photo in S3 and records a photo-sourced meal
// entry with whatever totals the client supplies.
func (h *MealController) AddMealPhoto(c *gin.Context) {
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

	var input mealPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := utils.UploadMealPhoto(input.Image, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.MealEntry{
		DateKey:  services.DateKey(date),
		Source:   models.MealSourcePhoto,
		PhotoURL: url,
		Totals:   input.Totals,
	}
	saved, err := h.Store.AddMeal(c.Request.Context(), userID, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}
