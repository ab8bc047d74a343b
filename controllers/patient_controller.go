package controllers

import (
	"net/http"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
)

func ListPatients(c *gin.Context) {
	viewer := currentViewer(c)

	patients, err := services.NewPatientService(config.DB).DietitianPatients(viewer.DietitianID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(patients))
	for _, p := range patients {
		out = append(out, gin.H{
			"patient_id": p.ID,
			"fname":      p.Fname,
			"lname":      p.Lname,
			"email":      p.Email,
		})
	}
	c.JSON(http.StatusOK, gin.H{"patients": out})
}

func CreatePatient(c *gin.Context) {
	viewer := currentViewer(c)

	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	patient, err := services.NewPatientService(config.DB).CreatePatient(viewer.DietitianID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"patient_id": patient.ID})
}

func UpdatePatient(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.NewPatientService(config.DB).UpdatePatient(patientID, input)
	if err == services.ErrPatientNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func ResetPatientPassword(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.NewPatientService(config.DB).ResetPassword(patientID, input.Password)
	if err == services.ErrPatientNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdatePostForm saves which rating fields the dietitian wants on this
// patient's post form.
func UpdatePostForm(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	var input struct {
		HungerVisible       bool `json:"hunger_visible"`
		FullnessVisible     bool `json:"fullness_visible"`
		SatisfactionVisible bool `json:"satisfaction_visible"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.NewPatientService(config.DB).UpdatePostForm(
		patientID, input.HungerVisible, input.FullnessVisible, input.SatisfactionVisible)
	if err == services.ErrPatientNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func UpdateDietitian(c *gin.Context) {
	viewer := currentViewer(c)

	var input services.DietitianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.NewDietitianService(config.DB).Update(viewer.DietitianID, input)
	if err == services.ErrDietitianNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "dietitian not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func ResetDietitianPassword(c *gin.Context) {
	viewer := currentViewer(c)

	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.NewDietitianService(config.DB).ResetPassword(viewer.DietitianID, input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
