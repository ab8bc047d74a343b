package services

import (
	"errors"

	"github.com/emilycheera/nourish/models"
	"github.com/emilycheera/nourish/utils"

	"gorm.io/gorm"
)

var ErrDietitianNotFound = errors.New("dietitian not found")

type DietitianService struct {
	db *gorm.DB
}

func NewDietitianService(db *gorm.DB) *DietitianService {
	return &DietitianService{db: db}
}

type DietitianInput struct {
	Fname         string `json:"fname" binding:"required"`
	Lname         string `json:"lname" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
}

func (s *DietitianService) Register(in DietitianInput) (*models.Dietitian, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	dietitian := &models.Dietitian{
		Fname:         in.Fname,
		Lname:         in.Lname,
		Email:         in.Email,
		Password:      hashed,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		State:         in.State,
		Zipcode:       in.Zipcode,
	}
	if err := s.db.Create(dietitian).Error; err != nil {
		return nil, err
	}
	return dietitian, nil
}

func (s *DietitianService) Update(dietitianID uint, in DietitianInput) error {
	dietitian, err := s.Get(dietitianID)
	if err != nil {
		return err
	}

	dietitian.Fname = in.Fname
	dietitian.Lname = in.Lname
	dietitian.Email = in.Email
	dietitian.StreetAddress = in.StreetAddress
	dietitian.City = in.City
	dietitian.State = in.State
	dietitian.Zipcode = in.Zipcode

	return s.db.Save(dietitian).Error
}

func (s *DietitianService) ResetPassword(dietitianID uint, password string) error {
	dietitian, err := s.Get(dietitianID)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	dietitian.Password = hashed

	return s.db.Save(dietitian).Error
}

func (s *DietitianService) Get(dietitianID uint) (*models.Dietitian, error) {
	var dietitian models.Dietitian
	if err := s.db.First(&dietitian, dietitianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDietitianNotFound
		}
		return nil, err
	}
	return &dietitian, nil
}
