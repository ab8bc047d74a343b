package services

import (
	"errors"

	"github.com/emilycheera/nourish/models"
	"github.com/emilycheera/nourish/utils"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// AuthenticateDietitian checks dietitian credentials and returns a signed
// token with the dietitian role.
func (s *AuthService) AuthenticateDietitian(email, password string) (string, error) {
	var dietitian models.Dietitian
	if err := s.db.Where("email = ?", email).First(&dietitian).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, dietitian.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(RoleDietitian, dietitian.ID)
}

// AuthenticatePatient checks patient credentials and returns a signed token
// with the patient role.
func (s *AuthService) AuthenticatePatient(email, password string) (string, error) {
	var patient models.Patient
	if err := s.db.Where("email = ?", email).First(&patient).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, patient.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(RolePatient, patient.ID)
}
