package handler

import (
	"net/http"
	"time"

	"SafeCampus/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

type CreateReportReq struct {
	Location string `json:"location"`
	Details  string `json:"details" binding:"required"`
	Image    string `json:"image"`
	Video    string `json:"video"`
	Date     string `json:"date" binding:"required"`
}

type AcknowledgeReq struct {
	ID uint64 `json:"id" binding:"required"`
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid date provided"})
		return
	}

	report, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.Location, req.Details, req.Image, req.Video, date)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// Mine lists the caller's reports.
func (h *ReportHandler) Mine(c *gin.Context) {
	reports, err := h.svc.ListMine(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// All lists every report; routed behind the admin middleware.
func (h *ReportHandler) All(c *gin.Context) {
	reports, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (h *ReportHandler) Acknowledge(c *gin.Context) {
	var req AcknowledgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	report, err := h.svc.Acknowledge(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}
