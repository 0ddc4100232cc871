package handler

import (
	"net/http"

	"SafeCampus/internal/service"

	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	svc *service.TipService
}

type CreateTipReq struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

func NewTipHandler(svc *service.TipService) *TipHandler {
	return &TipHandler{svc: svc}
}

func (h *TipHandler) List(c *gin.Context) {
	tips, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tips})
}

func (h *TipHandler) Create(c *gin.Context) {
	var req CreateTipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	tip, err := h.svc.Create(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tip})
}
