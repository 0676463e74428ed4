package services

import (
	"errors"
	"fmt"

	"backend/config"
	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// RegisterNutritionist signs up a practice account. Patient accounts are
// only created through the invitation flow.
func RegisterNutritionist(email, password, name string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		Name:     name,
		Role:     models.RoleNutritionist,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		var existing models.User
		if config.DB.Where("email = ?", email).First(&existing).Error == nil {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	RecordActivity(user.ID, "login")
	return token, &user, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return &user, nil
}
