package services

import (
	"testing"

	"backend/config"
	"backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a throwaway in-memory
// database. Each test gets its own.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Invitation{},
		&models.Prescription{},
		&models.Subscription{},
		&models.DiaryEntry{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
}

func seedNutritionist(t *testing.T, email string) *models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: "Dra. Ana", Role: models.RoleNutritionist}
	if err := config.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed nutritionist: %v", err)
	}
	return &u
}

func seedPatient(t *testing.T, owner *models.User, name string) *models.Patient {
	t.Helper()
	p := models.Patient{OwnerID: owner.ID, Name: name, Email: name + "@example.com"}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return &p
}

// seedPatientUser creates the linked login account for a patient record.
func seedPatientUser(t *testing.T, p *models.Patient) *models.User {
	t.Helper()
	u := models.User{Email: p.Email, Password: "x", Name: p.Name, Role: models.RolePatient}
	if err := config.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed patient user: %v", err)
	}
	p.UserID = &u.ID
	if err := config.DB.Save(p).Error; err != nil {
		t.Fatalf("link patient user: %v", err)
	}
	return &u
}

func seedMeals(t *testing.T) []models.MealData {
	t.Helper()
	return []models.MealData{
		{
			ID:    models.NewMealID(),
			Name:  "Café da manhã",
			Notes: "Leve",
			Items: []models.MealItemData{
				{
					ID:          models.NewMealID(),
					Description: "Pão",
					Amount:      "1 fatia",
					Substitutes: []string{"Aveia", "Tapioca"},
				},
			},
		},
		{
			ID:   models.NewMealID(),
			Name: "Almoço",
			Items: []models.MealItemData{
				{ID: models.NewMealID(), Description: "Arroz", Amount: "4 colheres"},
			},
		},
	}
}
