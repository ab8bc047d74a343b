package controllers

import (
	"net/http"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
)

// RecentRatings returns the most recent data-bearing week of ratings plus the
// dropdown of all weeks with data. "data" is null when the patient has no
// rated posts yet.
func RecentRatings(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	ratings, err := services.NewRatingsService(config.DB).RecentRatings(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// PastRatings returns one week of ratings starting at the Sunday given by the
// chart-date query parameter.
func PastRatings(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	series, err := services.NewRatingsService(config.DB).PastRatings(patientID, c.Query("chart-date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": series})
}
