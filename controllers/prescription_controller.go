package controllers

import (
	"fmt"
	"net/http"
	"time"

	"backend/editor"
	"backend/middlewares"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func CreatePrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var body struct {
		PatientID uint   `json:"patient_id" binding:"required"`
		Title     string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rx, err := services.NewPrescriptionService().Create(user, body.PatientID, body.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rx)
}

func GetPrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	rx, err := services.NewPrescriptionService().Get(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

func ListPrescriptions(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	list, err := services.NewPrescriptionService().ListByPatient(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetLatestPrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	rx, err := services.NewPrescriptionService().GetLatestPublished(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

// UpdatePrescription replaces the whole document; the editor client always
// PUTs its full in-memory copy.
func UpdatePrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rx, err := services.NewPrescriptionService().Update(user, idParam(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

func PublishPrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var body struct {
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rx, err := services.NewPrescriptionService().Publish(user, idParam(c, "id"), body.ExpiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

func DuplicatePrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var body struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rx, err := services.NewPrescriptionService().Duplicate(user, idParam(c, "id"), body.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rx)
}

func DeletePrescription(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	if err := services.NewPrescriptionService().Delete(user, idParam(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportPrescriptionCSV replaces the meal tree from an uploaded CSV
// (Refeicao,ItemPrincipal,Quantidade,Substitutos,ObservacoesRefeicao).
func ImportPrescriptionCSV(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	svc := services.NewPrescriptionService()

	rx, err := svc.Get(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body struct {
		CSV string `json:"csv" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := editor.FromPrescription(rx)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := doc.ImportCSV(body.CSV); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rx, err = svc.Update(user, rx.ID, services.PrescriptionInput{
		Title:        doc.Title,
		GeneralNotes: doc.GeneralNotes,
		Meals:        doc.Meals,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

// ExportPrescriptionJSON downloads {title, generalNotes, meals}; the file
// round-trips only through the matching JSON importer, not the CSV one.
func ExportPrescriptionJSON(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	rx, err := services.NewPrescriptionService().Get(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := editor.FromPrescription(rx)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := doc.ExportJSON()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.json", utils.Slugify(rx.Title))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportPrescriptionPDF streams the paginated A4 artifact.
func ExportPrescriptionPDF(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	svc := services.NewPrescriptionService()

	rx, err := svc.Get(user, idParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	patient, err := services.PatientForActor(user, rx.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := services.BuildPrescriptionPDF(rx, patient)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
