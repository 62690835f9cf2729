package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/career"
	"github.com/muhammadolammi/careerpilot/internal/interview"
)

type CareerService interface {
	Guidance(ctx context.Context, input string) (career.Result, error)
	AnalyzeResume(ctx context.Context, u career.Upload) (career.ResumeAnalysis, error)
	LearningPath(ctx context.Context, skills string) (career.Result, error)
	Channels(ctx context.Context, skills string) ([]career.Channel, error)
	MarketInsights(ctx context.Context) career.MarketInsights
	Networking(ctx context.Context, req career.NetworkingRequest) (career.Result, error)
}

type CareerHandler struct {
	svc CareerService
}

func NewCareerHandler(svc CareerService) *CareerHandler {
	return &CareerHandler{svc: svc}
}

type guidanceRequest struct {
	Input string `json:"input"`
}

type skillsRequest struct {
	Skills string `json:"skills"`
}

func (h *CareerHandler) Guidance(c *gin.Context) {
	var req guidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.Guidance(c.Request.Context(), req.Input)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *CareerHandler) AnalyzeResume(c *gin.Context) {
	fh, err := c.FormFile("resume")
	if err != nil {
		respondErr(c, apperr.Validation("resume", "Please select a PDF file first."))
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if err := career.ValidateUpload(contentType, fh.Size); err != nil {
		respondErr(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, career.MaxUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	res, err := h.svc.AnalyzeResume(c.Request.Context(), career.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *CareerHandler) LearningPath(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.LearningPath(c.Request.Context(), req.Skills)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, res)
}

func (h *CareerHandler) Channels(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	channels, err := h.svc.Channels(c.Request.Context(), req.Skills)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"channels": channels})
}

func (h *CareerHandler) MarketInsights(c *gin.Context) {
	RespondOK(c, h.svc.MarketInsights(c.Request.Context()))
}

func (h *CareerHandler) Networking(c *gin.Context) {
	var req career.NetworkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.Networking(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, res)
}

// Options lists the fixed choices the forms offer.
func (h *CareerHandler) Options(c *gin.Context) {
	RespondOK(c, gin.H{
		"career_stages":          career.CareerStages,
		"goals":                  career.Goals,
		"interview_styles":       interview.Styles,
		"interview_difficulties": interview.Difficulties,
		"question_counts":        interview.QuestionCounts,
	})
}
