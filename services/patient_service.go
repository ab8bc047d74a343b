package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/emilycheera/nourish/models"
	"github.com/emilycheera/nourish/utils"

	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

// PatientInput carries the account fields a dietitian fills in when creating
// or updating a patient. Birthdate is YYYY-MM-DD or empty.
type PatientInput struct {
	Fname         string `json:"fname" binding:"required"`
	Lname         string `json:"lname" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
	Phone         string `json:"phone"`
	Birthdate     string `json:"birthdate"`
}

func parseBirthdate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}

// CreatePatient registers a new patient under the given dietitian.
func (s *PatientService) CreatePatient(dietitianID uint, in PatientInput) (*models.Patient, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	birthdate, err := parseBirthdate(in.Birthdate)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{
		DietitianID:         dietitianID,
		Fname:               in.Fname,
		Lname:               in.Lname,
		Email:               in.Email,
		Password:            hashed,
		StreetAddress:       in.StreetAddress,
		City:                in.City,
		State:               in.State,
		Zipcode:             in.Zipcode,
		Phone:               in.Phone,
		Birthdate:           birthdate,
		HungerVisible:       true,
		FullnessVisible:     true,
		SatisfactionVisible: true,
	}
	if err := s.db.Create(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}

// UpdatePatient overwrites a patient's account fields. Password is not
// touched here; use ResetPassword.
func (s *PatientService) UpdatePatient(patientID uint, in PatientInput) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}

	birthdate, err := parseBirthdate(in.Birthdate)
	if err != nil {
		return err
	}

	patient.Fname = in.Fname
	patient.Lname = in.Lname
	patient.Email = in.Email
	patient.StreetAddress = in.StreetAddress
	patient.City = in.City
	patient.State = in.State
	patient.Zipcode = in.Zipcode
	patient.Phone = in.Phone
	patient.Birthdate = birthdate

	return s.db.Save(patient).Error
}

func (s *PatientService) ResetPassword(patientID uint, password string) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	patient.Password = hashed

	return s.db.Save(patient).Error
}

// UpdatePostForm saves which rating fields show on this patient's post form.
func (s *PatientService) UpdatePostForm(patientID uint, hunger, fullness, satisfaction bool) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}

	patient.HungerVisible = hunger
	patient.FullnessVisible = fullness
	patient.SatisfactionVisible = satisfaction

	return s.db.Save(patient).Error
}

func (s *PatientService) GetPatient(patientID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// DietitianPatients lists a dietitian's patients alphabetized by last name.
func (s *PatientService) DietitianPatients(dietitianID uint) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.
		Where("dietitian_id = ?", dietitianID).
		Order("lname ASC").
		Find(&patients).Error
	return patients, err
}

// DeletePatient removes a patient and everything they own: goals, posts, and
// the comments on those posts.
func (s *PatientService) DeletePatient(patientID uint) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}

	var postIDs []uint
	if err := s.db.Model(&models.Post{}).
		Where("patient_id = ?", patientID).
		Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	if len(postIDs) > 0 {
		if err := s.db.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.Where("patient_id = ?", patientID).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("patient_id = ?", patientID).Delete(&models.Goal{}).Error; err != nil {
		return err
	}

	return s.db.Delete(patient).Error
}
