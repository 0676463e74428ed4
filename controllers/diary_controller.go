package controllers

import (
	"net/http"
	"time"

	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// UpsertDiaryEntry saves the photo/mood record for one meal of a published
// prescription on one day; a second save for the same day updates it.
func UpsertDiaryEntry(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.DiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.UpsertDiaryEntry(user, idParam(c, "id"), c.Param("mealId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func ListDiaryEntries(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var from, to *time.Time
	if f := c.Query("from"); f != "" {
		if t, err := time.Parse("2006-01-02", f); err == nil {
			from = &t
		}
	}
	if tq := c.Query("to"); tq != "" {
		if t, err := time.Parse("2006-01-02", tq); err == nil {
			end := t.Add(24 * time.Hour)
			to = &end
		}
	}

	entries, err := services.ListDiaryEntries(user, idParam(c, "id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
