// Package analysis runs the résumé scoring pipeline and assembles the report.
package analysis

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/ats-checker/internal/feedback"
	"github.com/jonathan/ats-checker/internal/keywords"
	"github.com/jonathan/ats-checker/internal/logging"
	"github.com/jonathan/ats-checker/internal/scoring"
	"github.com/jonathan/ats-checker/internal/similarity"
	"github.com/jonathan/ats-checker/internal/structure"
	"github.com/jonathan/ats-checker/internal/suggestions"
	"github.com/jonathan/ats-checker/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// analysisDateLayout is RFC3339 with millisecond precision.
const analysisDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Options tunes the pipeline.
type Options struct {
	MaxKeywords     int
	DisplayKeywords int
	MinResumeLength int
	MinJobLength    int
	// Timeout bounds each provider-backed stage on its own. A stage that
	// runs out of time falls back; only the caller's context fails the call.
	// Zero disables it.
	Timeout time.Duration
}

// DefaultOptions returns the standard pipeline options.
func DefaultOptions() Options {
	return Options{
		MaxKeywords:     keywords.DefaultMaxKeywords,
		DisplayKeywords: keywords.DisplayKeywords,
		MinResumeLength: 50,
		MinJobLength:    20,
		Timeout:         60 * time.Second,
	}
}

// Deps are the collaborators of an Analyzer. Nil fields get provider-free defaults.
type Deps struct {
	Extractor   *keywords.Extractor
	Scorer      *similarity.Scorer
	Synthesizer *suggestions.Synthesizer
	Observer    Observer
	Logger      *zap.Logger
	Clock       func() time.Time
}

// Analyzer scores résumés against job descriptions.
type Analyzer struct {
	extractor   *keywords.Extractor
	scorer      *similarity.Scorer
	synthesizer *suggestions.Synthesizer
	observer    Observer
	logger      *zap.Logger
	clock       func() time.Time
	opts        Options
}

// New creates an Analyzer.
func New(deps Deps, opts Options) *Analyzer {
	logger := logging.OrNop(deps.Logger)
	a := &Analyzer{
		extractor:   deps.Extractor,
		scorer:      deps.Scorer,
		synthesizer: deps.Synthesizer,
		observer:    deps.Observer,
		logger:      logger,
		clock:       deps.Clock,
		opts:        opts,
	}
	if a.extractor == nil {
		a.extractor = keywords.NewExtractor(nil, logger)
	}
	if a.scorer == nil {
		a.scorer = similarity.NewScorer(nil, logger)
	}
	if a.synthesizer == nil {
		a.synthesizer = suggestions.NewSynthesizer(suggestions.FallbackProvider{}, logger)
	}
	if a.observer == nil {
		a.observer = nopObserver{}
	}
	if a.clock == nil {
		a.clock = time.Now
	}
	if a.opts.MaxKeywords <= 0 {
		a.opts.MaxKeywords = keywords.DefaultMaxKeywords
	}
	if a.opts.DisplayKeywords <= 0 {
		a.opts.DisplayKeywords = keywords.DisplayKeywords
	}
	return a
}

// stageResults holds the outputs of the concurrent stage. Each field is
// written by exactly one goroutine.
type stageResults struct {
	resumeKeywords keywords.Extraction
	jobKeywords    keywords.Extraction
	similarity     similarity.Result
	structure      types.StructureResult
}

// Analyze validates req, runs every stage and returns the report. Provider
// failures degrade to fallbacks and never fail the call; only invalid input
// or a cancelled context does.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*types.Report, error) {
	start := time.Now()
	report, err := a.analyze(ctx, req)
	a.observer.ObserveAnalysis(time.Since(start), err)
	return report, err
}

func (a *Analyzer) analyze(ctx context.Context, req Request) (*types.Report, error) {
	if err := req.Validate(a.opts.MinResumeLength, a.opts.MinJobLength); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &Error{Cause: err}
	}

	a.logger.Debug("analysis started",
		zap.Int("resume_length", utf8.RuneCountInString(req.ResumeText)),
		zap.Int("job_length", utf8.RuneCountInString(req.JobDescription)),
	)

	stages, err := a.runStages(ctx, req)
	if err != nil {
		return nil, &Error{Cause: err}
	}

	match := keywords.Match(stages.resumeKeywords.Keywords, stages.jobKeywords.Keywords)

	suggestCtx, cancel := a.stageContext(ctx)
	bundle, suggestionSource := a.synthesizer.Generate(suggestCtx, suggestions.Request{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		ResumeKeywords: stages.resumeKeywords.Keywords,
		JobKeywords:    stages.jobKeywords.Keywords,
	})
	cancel()
	if err := ctx.Err(); err != nil {
		return nil, &Error{Cause: err}
	}

	components := scoring.Components{
		ATSCompatibility:    float64(stages.structure.Score),
		KeywordMatch:        match.Score,
		ContentQuality:      bundle.ContentQualityScore,
		SectionCompleteness: stages.structure.SectionScore,
		Similarity:          stages.similarity.Value,
	}
	breakdown := scoring.Normalize(components)
	overall := scoring.Overall(components)

	fb := feedback.Compose(feedback.Input{
		OverallScore: overall,
		Match:        types.Some(match),
		Structure:    types.Some(stages.structure),
		Suggestions:  types.Some(bundle),
	})

	provenance := types.Provenance{
		Keywords:    keywordSource(stages.resumeKeywords.Source, stages.jobKeywords.Source),
		Similarity:  stages.similarity.Source,
		Suggestions: suggestionSource,
	}
	a.recordFallbacks(provenance)

	report := &types.Report{
		OverallScore: round(overall),
		Breakdown: types.Breakdown{
			ATSCompatibility:    round(breakdown.ATSCompatibility),
			KeywordMatch:        round(breakdown.KeywordMatch),
			ContentQuality:      round(breakdown.ContentQuality),
			SectionCompleteness: round(breakdown.SectionCompleteness),
			OverallReadability:  round(breakdown.Readability),
		},
		KeywordAnalysis: types.KeywordAnalysis{
			Matched:         match.Matched,
			Missing:         match.Missing,
			MatchPercentage: match.MatchPercentage,
			ResumeKeywords:  head(stages.resumeKeywords.Keywords, a.opts.DisplayKeywords),
			JobKeywords:     head(stages.jobKeywords.Keywords, a.opts.DisplayKeywords),
		},
		StructureAnalysis: types.StructureAnalysis{
			Sections:        stages.structure.Sections,
			Issues:          stages.structure.Issues,
			Recommendations: stages.structure.Recommendations,
		},
		AISuggestions: types.Suggestions{
			General:      bundle.General,
			Specific:     bundle.Specific,
			ActionVerbs:  bundle.ActionVerbs,
			PowerPhrases: bundle.PowerPhrases,
		},
		Feedback:        fb,
		Metadata:        a.metadata(req),
		ContentInsights: contentInsights(req.ResumeText),
		Provenance:      provenance,
	}

	a.logger.Info("analysis completed",
		zap.String("report_id", report.Metadata.ReportID),
		zap.Int("overall_score", report.OverallScore),
		zap.Int("match_percentage", match.MatchPercentage),
		zap.String("suggestions_source", string(suggestionSource)),
	)
	return report, nil
}

// runStages runs keyword extraction for both texts, similarity and structure
// concurrently. Stages absorb their own provider failures, so the only error
// is a cancelled context.
func (a *Analyzer) runStages(ctx context.Context, req Request) (stageResults, error) {
	var res stageResults
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stageCtx, cancel := a.stageContext(gCtx)
		defer cancel()
		res.resumeKeywords = a.extractor.Extract(stageCtx, req.ResumeText, a.opts.MaxKeywords)
		return gCtx.Err()
	})
	g.Go(func() error {
		stageCtx, cancel := a.stageContext(gCtx)
		defer cancel()
		res.jobKeywords = a.extractor.Extract(stageCtx, req.JobDescription, a.opts.MaxKeywords)
		return gCtx.Err()
	})
	g.Go(func() error {
		stageCtx, cancel := a.stageContext(gCtx)
		defer cancel()
		res.similarity = a.scorer.Score(stageCtx, req.ResumeText, req.JobDescription)
		return gCtx.Err()
	})
	g.Go(func() error {
		res.structure = structure.Validate(req.ResumeText)
		return nil
	})

	if err := g.Wait(); err != nil {
		return stageResults{}, err
	}
	return res, nil
}

// stageContext derives the context for one provider-backed stage.
func (a *Analyzer) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opts.Timeout > 0 {
		return context.WithTimeout(ctx, a.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (a *Analyzer) metadata(req Request) types.Metadata {
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		fileName = DefaultFileName
	}
	return types.Metadata{
		ReportID:     ReportID(fileName, req.ResumeText, req.JobDescription),
		FileName:     fileName,
		AnalysisDate: a.clock().UTC().Format(analysisDateLayout),
		TextLength:   utf8.RuneCountInString(req.ResumeText),
		WordCount:    len(strings.Fields(req.ResumeText)),
	}
}

func (a *Analyzer) recordFallbacks(p types.Provenance) {
	if p.Keywords == types.SourceFallback {
		a.observer.ObserveFallback(ComponentKeywords)
	}
	if p.Similarity == types.SourceFallback {
		a.observer.ObserveFallback(ComponentSimilarity)
	}
	if p.Suggestions == types.SourceFallback {
		a.observer.ObserveFallback(ComponentSuggestions)
	}
}

// ReportID derives a stable identifier from the analyzed inputs.
func ReportID(fileName, resume, job string) string {
	data := strings.Join([]string{fileName, resume, job}, "\x00")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(data)).String()
}

func contentInsights(resume string) types.ContentInsights {
	return types.ContentInsights{
		ActionVerbs:    structure.CheckActionVerbs(resume),
		Achievements:   structure.CheckQuantifiableAchievements(resume),
		Readability:    scoring.Readability(resume),
		SectionContent: structure.ExtractSectionContent(resume),
		DetectedVerbs:  keywords.ExtractActionVerbs(resume),
	}
}

func keywordSource(sources ...types.Source) types.Source {
	for _, s := range sources {
		if s == types.SourceFallback {
			return types.SourceFallback
		}
	}
	return types.SourceProvider
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return append([]string{}, items...)
}

func round(v float64) int {
	return int(math.Round(v))
}
