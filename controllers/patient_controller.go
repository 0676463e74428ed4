package controllers

import (
	"net/http"

	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func CreatePatient(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := services.CreatePatient(user, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func ListPatients(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	patients, err := services.ListPatients(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func GetPatient(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	patient, err := services.PatientForActor(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func UpdatePatient(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := services.UpdatePatient(user, idParam(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func SubmitAnamnesis(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.AnamnesisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := services.SubmitAnamnesis(user, idParam(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeletePatient refuses while prescriptions, subscriptions or pending
// invitations still reference the record; the 409 body lists them.
func DeletePatient(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	if err := services.DeletePatient(user, idParam(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
