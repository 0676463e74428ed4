package services

import (
	"fmt"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// GetUserProfile shapes the profile payload for the logged-in user. Patient
// accounts also carry their practice record plus derived anamnesis numbers.
func GetUserProfile(user *models.User) (map[string]interface{}, error) {
	out := map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	}

	if user.Role == models.RolePatient {
		var p models.Patient
		if err := config.DB.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			patient := map[string]interface{}{
				"id":             p.ID,
				"name":           p.Name,
				"sex":            p.Sex,
				"height_cm":      p.HeightCm,
				"weight_kg":      p.WeightKg,
				"goal":           p.Goal,
				"activity_level": p.ActivityLevel,
				"intolerances":   p.Intolerances,
			}
			if !p.BirthDate.IsZero() {
				patient["birth_date"] = p.BirthDate.Format("2006-01-02")
				patient["age"] = utils.CalculateAge(p.BirthDate)
			}
			if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
				patient["bmi"] = bmi
				patient["bmi_category"] = utils.BMICategory(bmi)
			}
			out["patient"] = patient
		}
	}
	return out, nil
}

type ProfileInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func UpdateUserProfile(user *models.User, input ProfileInput) error {
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}
	return config.DB.Save(user).Error
}
