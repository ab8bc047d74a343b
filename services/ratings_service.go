package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/emilycheera/nourish/models"

	"gorm.io/gorm"
)

// RatingDimension selects one of a post's three nullable rating fields.
type RatingDimension string

const (
	DimensionHunger       RatingDimension = "hunger"
	DimensionFullness     RatingDimension = "fullness"
	DimensionSatisfaction RatingDimension = "satisfaction"

	// DefaultDimension is what an unrecognized chart label falls back to.
	// The satisfaction fallback is long-standing front-end behavior; changing
	// it would break the existing chart labels.
	DefaultDimension = DimensionSatisfaction
)

// DimensionForLabel maps a chart label to the rating field it selects.
// Anything other than the two known labels selects DefaultDimension.
func DimensionForLabel(label string) RatingDimension {
	switch label {
	case "Hunger Rating":
		return DimensionHunger
	case "Fullness Rating":
		return DimensionFullness
	default:
		return DefaultDimension
	}
}

// column returns the posts column holding the dimension's values.
func (d RatingDimension) column() string {
	switch d {
	case DimensionHunger:
		return "hunger"
	case DimensionFullness:
		return "fullness"
	default:
		return "satisfaction"
	}
}

const isoDateTime = "2006-01-02T15:04:05"
const isoDate = "2006-01-02"

// RatingPoint is one (meal time, rating) sample for a time-series chart.
type RatingPoint struct {
	MealTime string `json:"meal_time"`
	Rating   int    `json:"rating"`
}

// RatingsSeries holds one week of samples for all three dimensions.
type RatingsSeries struct {
	Hunger         []RatingPoint `json:"hunger"`
	Fullness       []RatingPoint `json:"fullness"`
	Satisfaction   []RatingPoint `json:"satisfaction"`
	ChartStartDate string        `json:"chart_start_date"`
}

// WeeklyRatings is the recent-ratings endpoint payload. Data is nil when the
// patient has no rated posts at all.
type WeeklyRatings struct {
	Data     *RatingsSeries `json:"data"`
	Dropdown DropdownDates  `json:"dropdown"`
}

type DropdownDates struct {
	DropdownDates []string `json:"dropdown_dates"`
}

type RatingsService struct {
	db *gorm.DB
}

func NewRatingsService(db *gorm.DB) *RatingsService {
	return &RatingsService{db: db}
}

// QueryRatings returns every (meal time, rating) pair for one dimension over
// an inclusive date range, skipping posts where the dimension is null.
// Results are ordered by meal time ascending, the only order meaningful for
// a chart.
func (s *RatingsService) QueryRatings(
	patientID uint, dim RatingDimension, from, to time.Time,
) ([]RatingPoint, error) {

	col := dim.column()

	var rows []struct {
		MealTime time.Time
		Rating   int
	}
	err := s.db.Model(&models.Post{}).
		Select(fmt.Sprintf("meal_time, %s AS rating", col)).
		Where("patient_id = ?", patientID).
		Where(fmt.Sprintf("%s IS NOT NULL", col)).
		Where("meal_time BETWEEN ? AND ?", from, to).
		Order("meal_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]RatingPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, RatingPoint{
			MealTime: r.MealTime.Format(isoDateTime),
			Rating:   r.Rating,
		})
	}

	return points, nil
}

// Series aggregates all three dimensions over the same range.
func (s *RatingsService) Series(
	patientID uint, from, to time.Time,
) (*RatingsSeries, error) {

	hunger, err := s.QueryRatings(patientID, DimensionHunger, from, to)
	if err != nil {
		return nil, err
	}
	fullness, err := s.QueryRatings(patientID, DimensionFullness, from, to)
	if err != nil {
		return nil, err
	}
	satisfaction, err := s.QueryRatings(patientID, DimensionSatisfaction, from, to)
	if err != nil {
		return nil, err
	}

	return &RatingsSeries{
		Hunger:         hunger,
		Fullness:       fullness,
		Satisfaction:   satisfaction,
		ChartStartDate: from.Format(isoDate),
	}, nil
}

// previousSunday returns the Sunday on or before t's calendar date. A meal
// exactly at Sunday midnight belongs to the window starting that same Sunday.
func previousSunday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Weekday()) // Sunday == 0
	return day.AddDate(0, 0, -offset)
}

// SundaysWithData returns the descending-sorted ISO dates of every Sunday
// that starts a week containing at least one rated post. Empty when the
// patient has no rated posts; callers must handle that case.
func (s *RatingsService) SundaysWithData(patientID uint) ([]string, error) {
	var mealTimes []time.Time
	err := s.db.Model(&models.Post{}).
		Where("patient_id = ?", patientID).
		Where("hunger IS NOT NULL OR fullness IS NOT NULL OR satisfaction IS NOT NULL").
		Pluck("meal_time", &mealTimes).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	sundays := make([]string, 0, len(mealTimes))
	for _, mt := range mealTimes {
		sunday := previousSunday(mt).Format(isoDate)
		if !seen[sunday] {
			seen[sunday] = true
			sundays = append(sundays, sunday)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(sundays)))

	return sundays, nil
}

// RecentRatings returns the most recent data-bearing week's series plus the
// dropdown of all such weeks. Data is nil for patients with no rated posts.
func (s *RatingsService) RecentRatings(patientID uint) (*WeeklyRatings, error) {
	sundays, err := s.SundaysWithData(patientID)
	if err != nil {
		return nil, err
	}

	result := &WeeklyRatings{
		Dropdown: DropdownDates{DropdownDates: sundays},
	}
	if len(sundays) == 0 {
		return result, nil
	}

	from, err := time.Parse(isoDate, sundays[0])
	if err != nil {
		return nil, err
	}
	to := from.AddDate(0, 0, 7)

	series, err := s.Series(patientID, from, to)
	if err != nil {
		return nil, err
	}
	result.Data = series

	return result, nil
}

// PastRatings returns the series for the week starting at chartDate
// (YYYY-MM-DD, normally a Sunday picked from the dropdown).
func (s *RatingsService) PastRatings(patientID uint, chartDate string) (*RatingsSeries, error) {
	from, err := time.Parse(isoDate, chartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid chart date %q: expected YYYY-MM-DD", chartDate)
	}
	to := from.AddDate(0, 0, 7)

	return s.Series(patientID, from, to)
}
