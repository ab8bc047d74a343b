package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/emilycheera/nourish/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostInput carries the patient-editable fields of a meal post. A nil rating
// means the patient left that field blank.
type PostInput struct {
	MealTime     time.Time
	MealSetting  string
	TEB          string
	MealNotes    string
	Hunger       *int
	Fullness     *int
	Satisfaction *int
	ImgPath      string
}

func (s *PostService) CreatePost(patientID uint, in PostInput) (*models.Post, error) {
	post := &models.Post{
		PatientID:    patientID,
		TimeStamp:    time.Now(),
		MealTime:     in.MealTime,
		ImgPath:      in.ImgPath,
		MealSetting:  in.MealSetting,
		TEB:          in.TEB,
		Hunger:       in.Hunger,
		Fullness:     in.Fullness,
		Satisfaction: in.Satisfaction,
		MealNotes:    in.MealNotes,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost overwrites a post's editable fields and marks it edited. The
// creation TimeStamp never changes. An empty ImgPath keeps the current image.
func (s *PostService) EditPost(postID uint, in PostInput) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if in.ImgPath != "" {
		post.ImgPath = in.ImgPath
	}
	post.MealTime = in.MealTime
	post.MealSetting = in.MealSetting
	post.TEB = in.TEB
	post.MealNotes = in.MealNotes
	post.Hunger = in.Hunger
	post.Fullness = in.Fullness
	post.Satisfaction = in.Satisfaction
	post.Edited = true

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post and all of its comments. Comments are exclusively
// owned by their post, so the cascade is enforced here rather than left to
// the store.
func (s *PostService) DeletePost(postID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := s.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&post).Error
}

// PostOwner returns the id of the patient who owns a post.
func (s *PostService) PostOwner(postID uint) (uint, error) {
	var post models.Post
	if err := s.db.Select("id", "patient_id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return post.PatientID, nil
}

// PatientPosts lists a patient's posts newest first.
func (s *PostService) PatientPosts(patientID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.
		Preload("Comments").
		Where("patient_id = ?", patientID).
		Order("time_stamp DESC").
		Find(&posts).Error
	return posts, err
}

// DietitianFeed lists the 30 most recent posts across all of a dietitian's
// patients.
func (s *PostService) DietitianFeed(dietitianID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.
		Preload("Patient").
		Joins("JOIN patients ON patients.id = posts.patient_id").
		Where("patients.dietitian_id = ?", dietitianID).
		Order("posts.time_stamp DESC").
		Limit(30).
		Find(&posts).Error
	return posts, err
}

// FindPostByChartPoint resolves a click on a ratings chart back to the post
// behind the point. Zero matches is a valid outcome (the post may have been
// edited or deleted since the chart loaded) and returns (nil, nil).
func (s *PostService) FindPostByChartPoint(
	patientID uint, ratingLabel, mealTimeISO string, ratingValue int,
) (*models.Post, error) {

	dim := DimensionForLabel(ratingLabel)

	mealTime, err := time.Parse(isoDateTime, mealTimeISO)
	if err != nil {
		return nil, fmt.Errorf("invalid meal time %q: %v", mealTimeISO, err)
	}

	var post models.Post
	err = s.db.
		Where("patient_id = ?", patientID).
		Where("meal_time = ?", mealTime).
		Where(fmt.Sprintf("%s = ?", dim.column()), ratingValue).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// PatientRef identifies the post's owner in a detail payload.
type PatientRef struct {
	PatientID uint   `json:"patient_id"`
	Fname     string `json:"fname"`
	Lname     string `json:"lname"`
}

// PostProjection is the serializable view of one post. Edited is a plain
// boolean; the presentation layer decides how to render it.
type PostProjection struct {
	PostID       uint   `json:"post_id"`
	TimeStamp    string `json:"time_stamp"`
	Edited       bool   `json:"edited"`
	ImgPath      string `json:"img_path"`
	MealTime     string `json:"meal_time"`
	MealSetting  string `json:"meal_setting"`
	TEB          string `json:"TEB"`
	Hunger       *int   `json:"hunger"`
	Fullness     *int   `json:"fullness"`
	Satisfaction *int   `json:"satisfaction"`
	MealNotes    string `json:"meal_notes"`
}

// PostDetail nests a post, its owner, and all of its comments keyed by
// comment id.
type PostDetail struct {
	Patient  PatientRef                 `json:"patient"`
	Post     PostProjection             `json:"post"`
	Comments map[uint]CommentProjection `json:"comments"`
}

// PostDetail assembles the detail view for one post. Comments are sorted by
// creation time ascending and every comment is included; author names resolve
// through the owning patient (and their dietitian for "diet" comments).
func (s *PostService) PostDetail(postID uint, viewer Viewer) (*PostDetail, error) {
	var post models.Post
	err := s.db.
		Preload("Comments").
		Preload("Patient").
		Preload("Patient.Dietitian").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	detail := &PostDetail{
		Patient: PatientRef{
			PatientID: post.Patient.ID,
			Fname:     post.Patient.Fname,
			Lname:     post.Patient.Lname,
		},
		Post: PostProjection{
			PostID:       post.ID,
			TimeStamp:    post.TimeStamp.Format(isoDateTime),
			Edited:       post.Edited,
			ImgPath:      post.ImgPath,
			MealTime:     post.MealTime.Format(isoDateTime),
			MealSetting:  post.MealSetting,
			TEB:          post.TEB,
			Hunger:       post.Hunger,
			Fullness:     post.Fullness,
			Satisfaction: post.Satisfaction,
			MealNotes:    post.MealNotes,
		},
		Comments: make(map[uint]CommentProjection),
	}

	comments := post.Comments
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].TimeStamp.Before(comments[j].TimeStamp)
	})

	for _, comment := range comments {
		detail.Comments[comment.ID] = projectComment(comment, post.Patient, viewer)
	}

	return detail, nil
}
