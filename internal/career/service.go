// Package career implements the single-shot features: guidance, resume
// analysis, learning paths, YouTube channels, market insights and
// networking tips. Each one validates its input, builds a prompt, makes one
// gateway call and decorates the reply for display.
package career

import (
	"context"
	"strings"
	"time"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/formatter"
	"github.com/muhammadolammi/careerpilot/internal/gateway"
	"github.com/muhammadolammi/careerpilot/internal/logger"
	"github.com/muhammadolammi/careerpilot/internal/prompts"
	"github.com/muhammadolammi/careerpilot/internal/storage"
)

const (
	DefaultCareerStage = "Mid-Career"
	DefaultGoal        = "General"
)

var (
	CareerStages = []string{"Entry Level", "Mid-Career", "Senior Professional", "Executive", "Career Changer", "Student"}
	Goals        = []string{"General", "Job Search", "Career Advancement", "Industry Insights", "Mentorship", "Business Development", "Knowledge Sharing"}
)

type Archiver interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type InsightsCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, text string) error
}

type Result struct {
	Text    string         `json:"text"`
	Display formatter.Tree `json:"display"`
}

type ResumeAnalysis struct {
	File       FileInfo `json:"file"`
	ArchiveKey string   `json:"archive_key,omitempty"`
	Result
}

type NetworkingRequest struct {
	Industry    string `json:"industry"`
	CareerStage string `json:"career_stage"`
	Goal        string `json:"goal"`
}

type Service struct {
	gen       gateway.Generator
	extractor Extractor
	archive   Archiver
	cache     InsightsCache
	fallback  *MarketSnapshot
	log       *logger.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithExtractor(e Extractor) Option { return func(s *Service) { s.extractor = e } }

// WithArchive keeps a copy of every accepted resume.
func WithArchive(a Archiver) Option { return func(s *Service) { s.archive = a } }

func WithInsightsCache(c InsightsCache) Option { return func(s *Service) { s.cache = c } }

func NewService(gen gateway.Generator, log *logger.Logger, opts ...Option) (*Service, error) {
	fallback, err := loadFallback(fallbackYAML)
	if err != nil {
		return nil, err
	}
	s := &Service{
		gen:       gen,
		extractor: PlaceholderExtractor{},
		fallback:  fallback,
		log:       log.With("component", "career"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) generate(ctx context.Context, feature, op, prompt string) (Result, error) {
	text, err := s.gen.Generate(gateway.WithFeature(ctx, feature), prompt)
	if err != nil {
		s.log.Error("generation failed", "feature", feature, "error", err)
		return Result{}, apperr.Generation(op, err)
	}
	return Result{Text: text, Display: formatter.Render(text)}, nil
}

func (s *Service) Guidance(ctx context.Context, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, apperr.Validation("input", "Please provide some information about your skills and interests.")
	}
	return s.generate(ctx, "guidance", "generate career guidance", prompts.Guidance(input))
}

func (s *Service) AnalyzeResume(ctx context.Context, u Upload) (ResumeAnalysis, error) {
	if err := ValidateUpload(u.ContentType, u.Size()); err != nil {
		return ResumeAnalysis{}, err
	}
	text, err := s.extractor.Extract(ctx, u)
	if err != nil {
		return ResumeAnalysis{}, err
	}

	analysis := ResumeAnalysis{File: Info(u)}
	if s.archive != nil {
		key := storage.ResumeKey(s.now(), u.Filename)
		if err := s.archive.Put(ctx, key, u.ContentType, u.Data); err != nil {
			s.log.Warn("failed to archive resume", "file", u.Filename, "error", err)
		} else {
			analysis.ArchiveKey = key
		}
	}

	analysis.Result, err = s.generate(ctx, "resume", "analyze resume", prompts.Resume(text))
	if err != nil {
		return ResumeAnalysis{}, err
	}
	return analysis, nil
}

func (s *Service) LearningPath(ctx context.Context, skills string) (Result, error) {
	if strings.TrimSpace(skills) == "" {
		return Result{}, apperr.Validation("skills", "Please enter the skills you want to learn.")
	}
	return s.generate(ctx, "learning_path", "generate learning path", prompts.LearningPath(skills))
}

func (s *Service) Channels(ctx context.Context, skills string) ([]Channel, error) {
	if strings.TrimSpace(skills) == "" {
		return nil, apperr.Validation("skills", "Please enter the skills you want to learn.")
	}
	res, err := s.generate(ctx, "channels", "fetch YouTube channels", prompts.Channels(skills))
	if err != nil {
		return nil, err
	}
	return ParseChannels(res.Text)
}

// MarketInsights never fails: when the model cannot answer, the static
// snapshot is served with AIGenerated unset.
func (s *Service) MarketInsights(ctx context.Context) MarketInsights {
	if s.cache != nil {
		text, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("insights cache read failed", "error", err)
		}
		if ok {
			display := formatter.Render(text)
			return MarketInsights{AIGenerated: true, Insights: text, Display: &display}
		}
	}

	res, err := s.generate(ctx, "market_insights", "fetch job market insights", prompts.MarketInsights())
	if err != nil {
		s.log.Warn("serving fallback market insights", "error", err)
		return MarketInsights{AIGenerated: false, MarketSnapshot: s.fallback}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, res.Text); err != nil {
			s.log.Warn("insights cache write failed", "error", err)
		}
	}
	return MarketInsights{AIGenerated: true, Insights: res.Text, Display: &res.Display}
}

func (s *Service) Networking(ctx context.Context, req NetworkingRequest) (Result, error) {
	if strings.TrimSpace(req.Industry) == "" {
		return Result{}, apperr.Validation("industry", "Please enter your industry or field of interest.")
	}
	stage := strings.TrimSpace(req.CareerStage)
	if stage == "" {
		stage = DefaultCareerStage
	}
	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		goal = DefaultGoal
	}
	return s.generate(ctx, "networking", "generate networking suggestions",
		prompts.Networking(strings.TrimSpace(req.Industry), stage, goal))
}
