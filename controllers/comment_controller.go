package controllers

import (
	"net/http"

	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
)

type commentBody struct {
	Comment string `json:"comment" binding:"required"`
}

func AddComment(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postSvc := services.NewPostService(config.DB)
	owner, err := postSvc.PostOwner(postID)
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

	svc := services.NewCommentService(config.DB)

	comment, err := svc.AddComment(postID, currentViewer(c), body.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload, err := svc.Payload(comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, payload)
}

func EditComment(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewCommentService(config.DB)

	comment, err := svc.EditComment(commentID, body.Comment)
	if err == services.ErrCommentNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload, err := svc.Payload(comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

func DeleteComment(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := services.NewCommentService(config.DB).DeleteComment(commentID)
	if err == services.ErrCommentNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
