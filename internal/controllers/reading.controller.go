package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthbuddy/internal/store"
)

// ReadingController serves the blood-pressure routes.
type ReadingController struct {
	store store.Store
}

func NewReadingController(s store.Store) *ReadingController {
	return &ReadingController{store: s}
}

type addReadingRequest struct {
	UserID    string `json:"userId"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	HeartRate int    `json:"heartRate"`
}

func (rc *ReadingController) AddReading(c *gin.Context) {
	var req addReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.UserID == "" || req.Systolic == 0 || req.Diastolic == 0 || req.HeartRate == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	reading, err := rc.store.AddReading(c.Request.Context(), req.UserID, req.Systolic, req.Diastolic, req.HeartRate)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (rc *ReadingController) GetReadings(c *gin.Context) {
	// Degrades to an empty list rather than failing; the store already
	// swallows its internal errors here.
	readings, err := rc.store.GetReadings(c.Request.Context(), c.Param("userId"))
	if err != nil || readings == nil {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rc *ReadingController) DeleteReading(c *gin.Context) {
	err := rc.store.DeleteReading(c.Request.Context(), c.Param("readingId"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reading not found"})
		case errors.Is(err, store.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reading id"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
