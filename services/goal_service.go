package services

import (
	"errors"
	"time"

	"github.com/emilycheera/nourish/models"

	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// GoalProjection is the serializable view of one goal.
type GoalProjection struct {
	GoalID    uint   `json:"goal_id"`
	TimeStamp string `json:"time_stamp"`
	Edited    bool   `json:"edited"`
	GoalBody  string `json:"goal_body"`
}

// GoalUpdate is the response to adding or editing a goal. PastGoal is only
// present when adding a goal demoted a previous one; the "goal" key is
// omitted entirely when there was no prior goal.
type GoalUpdate struct {
	CurrentGoal GoalProjection  `json:"current_goal"`
	PastGoal    *GoalProjection `json:"goal,omitempty"`
}

// GoalHistory is one page of a patient's goal list, split into the current
// goal and past goals.
type GoalHistory struct {
	CurrentGoal *GoalProjection  `json:"current_goal"`
	PastGoals   []GoalProjection `json:"past_goals"`
	Page        int              `json:"page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
}

func projectGoal(goal models.Goal) GoalProjection {
	return GoalProjection{
		GoalID:    goal.ID,
		TimeStamp: goal.TimeStamp.Format(isoDateTime),
		Edited:    goal.Edited,
		GoalBody:  goal.GoalBody,
	}
}

// AddGoal inserts a new goal and reports it as current. The patient's
// previously newest goal, captured before the insert, comes back as the
// demoted past goal when one existed.
func (s *GoalService) AddGoal(patientID uint, body string) (*GoalUpdate, error) {
	var previous models.Goal
	hasPrevious := true
	err := s.db.
		Where("patient_id = ?", patientID).
		Order("time_stamp DESC").
		First(&previous).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasPrevious = false
	}

	goal := &models.Goal{
		PatientID: patientID,
		TimeStamp: time.Now(),
		GoalBody:  body,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, err
	}

	update := &GoalUpdate{CurrentGoal: projectGoal(*goal)}
	if hasPrevious {
		past := projectGoal(previous)
		update.PastGoal = &past
	}

	return update, nil
}

// EditGoal overwrites a goal's body and marks it edited. The result is
// reported under the current-goal key regardless of the goal's place in the
// patient's history; the label is positional in the UI, not a chronology
// claim.
func (s *GoalService) EditGoal(goalID uint, body string) (*GoalUpdate, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	goal.GoalBody = body
	goal.Edited = true

	if err := s.db.Save(&goal).Error; err != nil {
		return nil, err
	}

	return &GoalUpdate{CurrentGoal: projectGoal(goal)}, nil
}

func (s *GoalService) DeleteGoal(goalID uint) error {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return s.db.Delete(&goal).Error
}

// PatientGoals returns one newest-first page of a patient's goals. The
// overall newest goal is reported separately as current; it is excluded from
// the past goals on the first page only, so later pages keep their full
// contents.
func (s *GoalService) PatientGoals(patientID uint, page, perPage int) (*GoalHistory, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := s.db.Model(&models.Goal{}).
		Where("patient_id = ?", patientID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var goals []models.Goal
	err := s.db.
		Where("patient_id = ?", patientID).
		Order("time_stamp DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&goals).Error
	if err != nil {
		return nil, err
	}

	history := &GoalHistory{
		PastGoals: []GoalProjection{},
		Page:      page,
		PerPage:   perPage,
		Total:     total,
	}

	var current models.Goal
	err = s.db.
		Where("patient_id = ?", patientID).
		Order("time_stamp DESC").
		First(&current).Error
	if err == nil {
		projected := projectGoal(current)
		history.CurrentGoal = &projected
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for _, goal := range goals {
		if history.CurrentGoal != nil && goal.ID == current.ID {
			continue
		}
		history.PastGoals = append(history.PastGoals, projectGoal(goal))
	}

	return history, nil
}
