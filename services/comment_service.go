package services

import (
	"errors"
	"log"
	"time"

	"github.com/emilycheera/nourish/models"
	"github.com/emilycheera/nourish/utils"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CommentProjection is the serializable view of one comment inside a post
// detail payload. IsAuthor means "the viewer wrote this", not an
// authorization check.
type CommentProjection struct {
	CommentID   uint   `json:"comment_id"`
	AuthorFname string `json:"author_fname"`
	AuthorLname string `json:"author_lname"`
	CommentBody string `json:"comment_body"`
	TimeStamp   string `json:"time_stamp"`
	Edited      bool   `json:"edited"`
	IsAuthor    bool   `json:"is_author"`
}

// projectComment resolves the author's display name through the post's owning
// patient: "pat" comments carry the patient's name, "diet" comments carry
// that patient's dietitian's name.
func projectComment(comment models.Comment, patient models.Patient, viewer Viewer) CommentProjection {
	var fname, lname string
	if comment.AuthorType == models.AuthorTypePatient {
		fname = patient.Fname
		lname = patient.Lname
	} else {
		fname = patient.Dietitian.Fname
		lname = patient.Dietitian.Lname
	}

	isAuthor := (viewer.IsDietitian() && comment.AuthorType == models.AuthorTypeDietitian) ||
		(viewer.IsPatient() && comment.AuthorType == models.AuthorTypePatient)

	return CommentProjection{
		CommentID:   comment.ID,
		AuthorFname: fname,
		AuthorLname: lname,
		CommentBody: comment.CommentBody,
		TimeStamp:   comment.TimeStamp.Format(isoDateTime),
		Edited:      comment.Edited,
		IsAuthor:    isAuthor,
	}
}

// CommentPayload is the response for comment add/edit calls.
type CommentPayload struct {
	User struct {
		Fname string `json:"fname"`
		Lname string `json:"lname"`
	} `json:"user"`
	Comment struct {
		CommentID   uint   `json:"comment_id"`
		TimeStamp   string `json:"time_stamp"`
		CommentBody string `json:"comment_body"`
		Edited      bool   `json:"edited"`
	} `json:"comment"`
}

// AddComment attaches a comment to a post, attributed to the viewer. The
// counterpart on the post gets a best-effort email notification.
func (s *CommentService) AddComment(postID uint, viewer Viewer, body string) (*models.Comment, error) {
	var post models.Post
	err := s.db.Preload("Patient").Preload("Patient.Dietitian").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:      postID,
		TimeStamp:   time.Now(),
		CommentBody: body,
	}
	if viewer.IsPatient() {
		comment.AuthorType = models.AuthorTypePatient
		comment.AuthorID = viewer.PatientID
	} else {
		comment.AuthorType = models.AuthorTypeDietitian
		comment.AuthorID = viewer.DietitianID
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	s.notifyCounterpart(post, comment)

	return comment, nil
}

// notifyCounterpart emails whichever side of the post did not write the
// comment. Failures are logged, never surfaced.
func (s *CommentService) notifyCounterpart(post models.Post, comment *models.Comment) {
	var to, authorName string
	if comment.AuthorType == models.AuthorTypeDietitian {
		to = post.Patient.Email
		authorName = post.Patient.Dietitian.Fname + " " + post.Patient.Dietitian.Lname
	} else {
		to = post.Patient.Dietitian.Email
		authorName = post.Patient.Fname + " " + post.Patient.Lname
	}
	if to == "" {
		return
	}
	if err := utils.SendCommentNotification(to, authorName); err != nil {
		log.Printf("comment notification to %s failed: %v", to, err)
	}
}

// EditComment overwrites a comment's body and marks it edited.
func (s *CommentService) EditComment(commentID uint, body string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	comment.CommentBody = body
	comment.Edited = true

	if err := s.db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) DeleteComment(commentID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return s.db.Delete(&comment).Error
}

// Payload builds the add/edit response for a comment, resolving the author
// name through the comment's post and its owning patient.
func (s *CommentService) Payload(comment *models.Comment) (*CommentPayload, error) {
	var post models.Post
	err := s.db.Preload("Patient").Preload("Patient.Dietitian").First(&post, comment.PostID).Error
	if err != nil {
		return nil, err
	}

	var p CommentPayload
	if comment.AuthorType == models.AuthorTypePatient {
		p.User.Fname = post.Patient.Fname
		p.User.Lname = post.Patient.Lname
	} else {
		p.User.Fname = post.Patient.Dietitian.Fname
		p.User.Lname = post.Patient.Dietitian.Lname
	}
	p.Comment.CommentID = comment.ID
	p.Comment.TimeStamp = comment.TimeStamp.Format(isoDateTime)
	p.Comment.CommentBody = comment.CommentBody
	p.Comment.Edited = comment.Edited

	return &p, nil
}
