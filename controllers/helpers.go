package controllers

import (
	"net/http"
	"strconv"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
)

func currentViewer(c *gin.Context) services.Viewer {
	viewer, _ := c.MustGet("viewer").(services.Viewer)
	return viewer
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// canAccessPatient reports whether the viewer is the patient themselves or
// the dietitian who owns them. Aborts with 403/404 when not.
func canAccessPatient(c *gin.Context, patientID uint) bool {
	viewer := currentViewer(c)

	if viewer.IsPatient() {
		if viewer.PatientID != patientID {
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
			return false
		}
		return true
	}

	patient, err := services.NewPatientService(config.DB).GetPatient(patientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return false
	}
	if patient.DietitianID != viewer.DietitianID {
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		return false
	}
	return true
}
