package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"
	"github.com/emilycheera/nourish/utils"

	"github.com/gin-gonic/gin"
)

type postBody struct {
	MealTime     string `json:"meal_time" binding:"required"`
	MealSetting  string `json:"meal_setting"`
	TEB          string `json:"TEB"`
	MealNotes    string `json:"meal_notes"`
	Hunger       *int   `json:"hunger"`
	Fullness     *int   `json:"fullness"`
	Satisfaction *int   `json:"satisfaction"`
	ImageBase64  string `json:"image_base64"`
}

func (b postBody) toInput(patientID uint) (services.PostInput, error) {
	mealTime, err := time.Parse("2006-01-02T15:04:05", b.MealTime)
	if err != nil {
		// the post form sends minutes precision
		mealTime, err = time.Parse("2006-01-02T15:04", b.MealTime)
		if err != nil {
			return services.PostInput{}, err
		}
	}

	in := services.PostInput{
		MealTime:     mealTime,
		MealSetting:  b.MealSetting,
		TEB:          b.TEB,
		MealNotes:    b.MealNotes,
		Hunger:       b.Hunger,
		Fullness:     b.Fullness,
		Satisfaction: b.Satisfaction,
	}

	if b.ImageBase64 != "" {
		url, err := utils.UploadMealImage(b.ImageBase64, patientID)
		if err != nil {
			return services.PostInput{}, err
		}
		in.ImgPath = url
	}

	return in, nil
}

func CreatePost(c *gin.Context) {
	viewer := currentViewer(c)
	if !viewer.IsPatient() {
		c.JSON(http.StatusForbidden, gin.H{"error": "patient access required"})
		return
	}

	var body postBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := body.toInput(viewer.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := services.NewPostService(config.DB).CreatePost(viewer.PatientID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post_id": post.ID})
}

func UpdatePost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.NewPostService(config.DB)

	existing, err := svc.PostOwner(postID)
	if err == services.ErrPostNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !canAccessPatient(c, existing) {
		return
	}

	var body postBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := body.toInput(existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := svc.EditPost(postID, in); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func DeletePost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.NewPostService(config.DB)

	owner, err := svc.PostOwner(postID)
	if err == services.ErrPostNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !canAccessPatient(c, owner) {
		return
	}

	if err := svc.DeletePost(postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func PatientPosts(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	viewer := currentViewer(c)
	svc := services.NewPostService(config.DB)

	posts, err := svc.PatientPosts(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]*services.PostDetail, 0, len(posts))
	for _, p := range posts {
		detail, err := svc.PostDetail(p.ID, viewer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, detail)
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// DietitianFeed returns the 30 most recent posts across the dietitian's
// patients.
func DietitianFeed(c *gin.Context) {
	viewer := currentViewer(c)

	posts, err := services.NewPostService(config.DB).DietitianFeed(viewer.DietitianID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, gin.H{
			"post_id":    p.ID,
			"patient_id": p.PatientID,
			"fname":      p.Patient.Fname,
			"lname":      p.Patient.Lname,
			"time_stamp": p.TimeStamp.Format("2006-01-02T15:04:05"),
			"meal_time":  p.MealTime.Format("2006-01-02T15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// ChartPost resolves a click on a ratings chart point back to its post. An
// unmatched point returns an empty object, not an error; the post may have
// been edited or deleted since the chart loaded.
func ChartPost(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !canAccessPatient(c, patientID) {
		return
	}

	ratingValue, err := strconv.Atoi(c.Query("ratingValue"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ratingValue"})
		return
	}

	svc := services.NewPostService(config.DB)

	post, err := svc.FindPostByChartPoint(
		patientID, c.Query("ratingLabel"), c.Query("postDatetime"), ratingValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	detail, err := svc.PostDetail(post.ID, currentViewer(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}
