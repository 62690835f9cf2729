package career

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/gateway"
	"github.com/muhammadolammi/careerpilot/internal/logger"
)

type fakeGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	prompts  []string
	features []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.features = append(f.features, gateway.Feature(ctx))
	return f.reply, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeArchive struct {
	keys []string
	err  error
}

func (a *fakeArchive) Put(_ context.Context, key, _ string, _ []byte) error {
	a.keys = append(a.keys, key)
	return a.err
}

type memoryCache struct {
	text string
	ok   bool
	sets int
}

func (c *memoryCache) Get(context.Context) (string, bool, error) { return c.text, c.ok, nil }
func (c *memoryCache) Set(_ context.Context, text string) error {
	c.text, c.ok = text, true
	c.sets++
	return nil
}

func newService(t *testing.T, gen gateway.Generator, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(gen, logger.Nop(), opts...)
	require.NoError(t, err)
	return svc
}

func TestValidationNeverReachesGateway(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := newService(t, gen)
	ctx := context.Background()

	_, err := svc.Guidance(ctx, "   ")
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "input", ve.Field)

	_, err = svc.LearningPath(ctx, "")
	require.ErrorAs(t, err, &ve)

	_, err = svc.Channels(ctx, "\n")
	require.ErrorAs(t, err, &ve)

	_, err = svc.Networking(ctx, NetworkingRequest{CareerStage: "Student"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "industry", ve.Field)

	assert.Zero(t, gen.calls())
}

func TestGuidanceRendersReply(t *testing.T) {
	gen := &fakeGenerator{reply: "## Paths\n- Backend engineer"}
	svc := newService(t, gen)

	res, err := svc.Guidance(context.Background(), "I like Go")
	require.NoError(t, err)
	assert.Equal(t, "## Paths\n- Backend engineer", res.Text)
	require.Len(t, res.Display.Nodes, 2)
	assert.Equal(t, []string{"guidance"}, gen.features)
	assert.Contains(t, gen.prompts[0], "I like Go")
}

func TestGenerationFailureIsWrapped(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newService(t, gen)

	_, err := svc.LearningPath(context.Background(), "go")
	var ge *apperr.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "generate learning path", ge.Op)
	assert.Equal(t, "failed to generate learning path: quota exceeded", err.Error())
}

func TestNetworkingDefaults(t *testing.T) {
	gen := &fakeGenerator{reply: "tips"}
	svc := newService(t, gen)

	_, err := svc.Networking(context.Background(), NetworkingRequest{Industry: " Fintech "})
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "someone in Fintech at the Mid-Career level with a focus on General")
}

func TestAnalyzeResumeRejectsBadFiles(t *testing.T) {
	gen := &fakeGenerator{reply: "analysis"}
	archive := &fakeArchive{}
	svc := newService(t, gen, WithArchive(archive))
	ctx := context.Background()

	_, err := svc.AnalyzeResume(ctx, Upload{Filename: "cv.docx", ContentType: "application/msword", Data: []byte("x")})
	var fe *apperr.FileValidationError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "type", fe.Reason)

	big := Upload{Filename: "cv.pdf", ContentType: PDFContentType, Data: make([]byte, MaxUploadBytes+1)}
	_, err = svc.AnalyzeResume(ctx, big)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "size", fe.Reason)

	assert.Zero(t, gen.calls())
	assert.Empty(t, archive.keys)
}

func TestAnalyzeResumeWithPlaceholder(t *testing.T) {
	gen := &fakeGenerator{reply: "**Score:** 7/10"}
	archive := &fakeArchive{}
	svc := newService(t, gen, WithArchive(archive))
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	upload := Upload{Filename: "jane.pdf", ContentType: PDFContentType, Data: make([]byte, 2048)}
	res, err := svc.AnalyzeResume(context.Background(), upload)
	require.NoError(t, err)

	assert.Equal(t, FileInfo{Name: "jane.pdf", Size: "2.00 KB", Type: PDFContentType}, res.File)
	assert.Equal(t, "**Score:** 7/10", res.Text)
	require.Len(t, archive.keys, 1)
	assert.Equal(t, archive.keys[0], res.ArchiveKey)
	assert.True(t, strings.HasPrefix(res.ArchiveKey, "resumes/2025/01/02/"))

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "simulated text extraction from the uploaded PDF file: jane.pdf")
	assert.Contains(t, prompt, "File size: 2.00 KB")
	assert.Contains(t, prompt, "File type: application/pdf")
}

func TestAnalyzeResumeArchiveFailureIsNotFatal(t *testing.T) {
	gen := &fakeGenerator{reply: "fine"}
	svc := newService(t, gen, WithArchive(&fakeArchive{err: errors.New("bucket missing")}))

	res, err := svc.AnalyzeResume(context.Background(), Upload{Filename: "a.pdf", ContentType: PDFContentType, Data: []byte("%PDF")})
	require.NoError(t, err)
	assert.Empty(t, res.ArchiveKey)
	assert.Equal(t, "fine", res.Text)
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	_, err := PDFExtractor{}.Extract(context.Background(), Upload{Filename: "x.pdf", ContentType: PDFContentType, Data: []byte("not a pdf")})
	var fe *apperr.FileValidationError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "unreadable", fe.Reason)
}

func TestChannelsParsesReply(t *testing.T) {
	gen := &fakeGenerator{reply: "1. **Fireship**\nhttps://www.youtube.com/@Fireship\nFast-paced tutorials\n2. TechWorld"}
	svc := newService(t, gen)

	channels, err := svc.Channels(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, Channel{Name: "Fireship", Link: "https://www.youtube.com/@Fireship", Description: "Fast-paced tutorials"}, channels[0])
}

func TestMarketInsightsFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unavailable")}
	svc := newService(t, gen)

	got := svc.MarketInsights(context.Background())
	assert.False(t, got.AIGenerated)
	require.NotNil(t, got.MarketSnapshot)
	require.Len(t, got.TrendingRoles, 8)
	assert.Equal(t, TrendingRole{Role: "AI/ML Engineer", Growth: "35%", Description: "Developing AI systems and machine learning models"}, got.TrendingRoles[0])
	assert.Len(t, got.EmergingSkills, 8)
	require.Len(t, got.SalaryTrends, 5)
	assert.Equal(t, "$185,000+", got.SalaryTrends[2].Senior)
}

func TestMarketInsightsUsesCache(t *testing.T) {
	gen := &fakeGenerator{reply: "# Trends"}
	cache := &memoryCache{}
	svc := newService(t, gen, WithInsightsCache(cache))

	first := svc.MarketInsights(context.Background())
	assert.True(t, first.AIGenerated)
	assert.Equal(t, "# Trends", first.Insights)
	assert.Nil(t, first.MarketSnapshot)

	second := svc.MarketInsights(context.Background())
	assert.Equal(t, first.Insights, second.Insights)
	assert.Equal(t, 1, gen.calls())
	assert.Equal(t, 1, cache.sets)
}
