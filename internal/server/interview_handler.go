package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/interview"
)

type InterviewHandler struct {
	sessions *interview.Registry
}

func NewInterviewHandler(sessions *interview.Registry) *InterviewHandler {
	return &InterviewHandler{sessions: sessions}
}

type draftRequest struct {
	Index *int   `json:"index"`
	Text  string `json:"text"`
}

type answerRequest struct {
	Index  *int   `json:"index"`
	Answer string `json:"answer"`
}

type skipRequest struct {
	Index *int `json:"index"`
}

func (h *InterviewHandler) session(c *gin.Context) (*interview.Controller, bool) {
	ctrl, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	return ctrl, true
}

func bindIndex(c *gin.Context, req any, index func() *int) (int, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return 0, false
	}
	i := index()
	if i == nil {
		respondErr(c, apperr.Validation("index", "question index is required"))
		return 0, false
	}
	return *i, true
}

func (h *InterviewHandler) Create(c *gin.Context) {
	ctrl := h.sessions.Create()
	c.JSON(http.StatusCreated, ctrl.Snapshot())
}

func (h *InterviewHandler) Get(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	RespondOK(c, ctrl.Snapshot())
}

func (h *InterviewHandler) Start(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var cfg interview.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := ctrl.Start(c.Request.Context(), cfg)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, snap)
}

func (h *InterviewHandler) Draft(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req draftRequest
	index, ok := bindIndex(c, &req, func() *int { return req.Index })
	if !ok {
		return
	}
	snap, err := ctrl.Draft(index, req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, snap)
}

func (h *InterviewHandler) Next(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req answerRequest
	index, ok := bindIndex(c, &req, func() *int { return req.Index })
	if !ok {
		return
	}
	snap, err := ctrl.Next(c.Request.Context(), index, req.Answer)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, snap)
}

func (h *InterviewHandler) Skip(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req skipRequest
	index, ok := bindIndex(c, &req, func() *int { return req.Index })
	if !ok {
		return
	}
	snap, err := ctrl.Skip(c.Request.Context(), index)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, snap)
}

func (h *InterviewHandler) Reset(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	RespondOK(c, ctrl.Reset())
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
