package controllers

import (
	"fmt"
	"log"
	"net/http"

	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// PatientReportXLSX streams the practice spreadsheet straight to the
// response instead of buffering the whole workbook.
func PatientReportXLSX(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	f, err := services.BuildPatientReport(user)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ReportFilename()))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if _, err := f.WriteTo(c.Writer); err != nil {
		log.Printf("report stream failed: %v", err)
	}
}
