package controllers

import (
	"net/http"

	"backend/middlewares"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func GetSubscription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	sub, err := services.CurrentSubscription(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func RequestSubscription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var body struct {
		PlanType string `json:"plan_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := services.RequestSubscription(user, idParam(c, "id"), body.PlanType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func ApproveSubscription(c *gin.Context) {
	decide(c, services.ApproveSubscription)
}

func ConfirmSubscriptionPayment(c *gin.Context) {
	decide(c, services.ConfirmPayment)
}

func RejectSubscription(c *gin.Context) {
	decide(c, services.RejectSubscription)
}

func CancelSubscription(c *gin.Context) {
	decide(c, services.CancelSubscription)
}

func decide(c *gin.Context, fn func(*models.User, uint) (*models.Subscription, error)) {
	user := middlewares.CurrentUser(c)

	sub, err := fn(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
