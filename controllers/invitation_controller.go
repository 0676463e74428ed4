package controllers

import (
	"net/http"

	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func CreateInvitation(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var body struct {
		Email     string `json:"email" binding:"required,email"`
		PatientID *uint  `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := services.CreateInvitation(user, body.Email, body.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func ListInvitations(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	list, err := services.ListInvitations(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AcceptInvitation is the public endpoint a prospective patient hits from
// the e-mailed link.
func AcceptInvitation(c *gin.Context) {
	var input services.AcceptInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, patient, err := services.AcceptInvitation(c.Param("token"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user_id":    user.ID,
		"patient_id": patient.ID,
		"message":    "registration complete",
	})
}
