package controllers

import (
	"net/http"
	"strconv"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
)

type goalBody struct {
	GoalBody string `json:"goal_body" binding:"required"`
}

func PatientGoals(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	history, err := services.NewGoalService(config.DB).PatientGoals(patientID, page, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

func AddGoal(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	var body goalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := services.NewGoalService(config.DB).AddGoal(patientID, body.GoalBody)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, update)
}

func EditGoal(c *gin.Context) {
	goalID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body goalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := services.NewGoalService(config.DB).EditGoal(goalID, body.GoalBody)
	if err == services.ErrGoalNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, update)
}

func DeleteGoal(c *gin.Context) {
	goalID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := services.NewGoalService(config.DB).DeleteGoal(goalID)
	if err == services.ErrGoalNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
