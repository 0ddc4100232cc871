package handler

import (
	"net/http"
	"strconv"

	"SafeCampus/internal/model"
	"SafeCampus/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostReq struct {
	Message    string   `json:"message"`
	Images     []string `json:"images"`
	Visibility string   `json:"visibility" binding:"omitempty,oneof=everyone followers me"`
}

type UpdatePostReq struct {
	PostID     uint64   `json:"post_id" binding:"required"`
	Message    string   `json:"message"`
	Images     []string `json:"images"`
	Visibility string   `json:"visibility" binding:"omitempty,oneof=everyone followers me"`
}

type postIDReq struct {
	PostID uint64 `json:"post_id" binding:"required"`
}

type CommentReq struct {
	PostID  uint64 `json:"post_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ReplyReq struct {
	PostID    uint64 `json:"post_id" binding:"required"`
	CommentID string `json:"comment_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type commentReactReq struct {
	PostID    uint64 `json:"post_id" binding:"required"`
	CommentID string `json:"comment_id" binding:"required"`
}

type replyReactReq struct {
	PostID    uint64 `json:"post_id" binding:"required"`
	CommentID string `json:"comment_id" binding:"required"`
	ReplyID   string `json:"reply_id" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), userIDFromCtx(c), req.Message, req.Images, model.Visibility(req.Visibility))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), userIDFromCtx(c), req.PostID, req.Message, req.Images, model.Visibility(req.Visibility))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), userIDFromCtx(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Feed returns every post the caller may see, newest first.
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.svc.Feed(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

// ProfileFeed returns the profile posts of the user in the path, filtered
// for the caller.
func (h *PostHandler) ProfileFeed(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ownerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid profile id"})
		return
	}

	posts, err := h.svc.ProfileFeed(c.Request.Context(), userIDFromCtx(c), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *PostHandler) Timeline(c *gin.Context) {
	posts, err := h.svc.Timeline(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *PostHandler) Hide(c *gin.Context) {
	var req postIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.HidePost(c.Request.Context(), userIDFromCtx(c), req.PostID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post hidden"})
}

// React toggles the caller's like on a post.
func (h *PostHandler) React(c *gin.Context) {
	var req postIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.TogglePostLike(c.Request.Context(), userIDFromCtx(c), req.PostID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) Comment(c *gin.Context) {
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.AddComment(c.Request.Context(), userIDFromCtx(c), req.PostID, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) Comments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	post, err := h.svc.GetComments(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) Reply(c *gin.Context) {
	var req ReplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.AddReply(c.Request.Context(), userIDFromCtx(c), req.PostID, req.CommentID, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) ReactToComment(c *gin.Context) {
	var req commentReactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.ToggleCommentLike(c.Request.Context(), userIDFromCtx(c), req.PostID, req.CommentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) ReactToReply(c *gin.Context) {
	var req replyReactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.ToggleReplyLike(c.Request.Context(), userIDFromCtx(c), req.PostID, req.CommentID, req.ReplyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}
