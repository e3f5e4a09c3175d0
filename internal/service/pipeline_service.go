package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/repository"
)

type StepStatus string

const (
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

const (
	StepBrandResearch = 1
	StepAnalysis      = 2
	StepIdeas         = 3
	StepScripts       = 4
)

var stepNames = map[int]string{
	StepBrandResearch: "Brand Research",
	StepAnalysis:      "AI Analysis",
	StepIdeas:         "Generate Ideas",
	StepScripts:       "Create Scripts",
}

// Step is a progress event of a pipeline run.
type Step struct {
	Number int        `json:"step"`
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// PipelineResult holds the generated items. Ideas and scripts are not saved;
// the analysis is saved when it had to be generated.
type PipelineResult struct {
	Analysis       *model.BrandAnalysis `json:"analysis"`
	AnalysisReused bool                 `json:"analysisReused"`
	Ideas          []model.Idea         `json:"ideas"`
	Scripts        []model.Script       `json:"scripts"`
}

type PipelineOptions struct {
	IdeaCount   int
	ScriptCount int
}

type PipelineService interface {
	// Run executes research check, analysis, ideas and scripts in order.
	// progress may be nil; it is called from the Run goroutine only.
	Run(ctx context.Context, brandID string, progress func(Step)) (*PipelineResult, error)
}

type pipelineServiceImpl struct {
	store    repository.Store
	analysis AnalysisService
	ideas    IdeaService
	scripts  ScriptService
	opts     PipelineOptions
	logger   *zap.Logger
}

func NewPipelineService(store repository.Store, analysis AnalysisService, ideas IdeaService, scripts ScriptService, opts PipelineOptions, logger *zap.Logger) PipelineService {
	if opts.IdeaCount <= 0 {
		opts.IdeaCount = prompts.DefaultIdeaCount
	}
	if opts.ScriptCount < 0 {
		opts.ScriptCount = 0
	}
	return &pipelineServiceImpl{
		store:    store,
		analysis: analysis,
		ideas:    ideas,
		scripts:  scripts,
		opts:     opts,
		logger:   logger.Named("PipelineService"),
	}
}

func (s *pipelineServiceImpl) Run(ctx context.Context, brandID string, progress func(Step)) (result *PipelineResult, err error) {
	if progress == nil {
		progress = func(Step) {}
	}
	current := StepBrandResearch
	emit := func(number int, status StepStatus, stepErr error) {
		step := Step{Number: number, Name: stepNames[number], Status: status}
		if stepErr != nil {
			step.Error = stepErr.Error()
		}
		progress(step)
	}
	defer func() {
		if err != nil {
			emit(current, StepFailed, err)
			pipelineRunsTotal.WithLabelValues("error").Inc()
			s.logger.Error("Pipeline failed", zap.String("brand_id", brandID), zap.Int("step", current), zap.Error(err))
			return
		}
		pipelineRunsTotal.WithLabelValues("success").Inc()
	}()
	run := func(number int, fn func() error) error {
		current = number
		emit(number, StepRunning, nil)
		start := time.Now()
		if err := fn(); err != nil {
			return err
		}
		pipelineStepDuration.WithLabelValues(stepNames[number]).Observe(time.Since(start).Seconds())
		emit(number, StepCompleted, nil)
		return nil
	}

	if brandID == "" {
		return nil, model.ErrBrandRequired
	}
	result = &PipelineResult{Ideas: []model.Idea{}, Scripts: []model.Script{}}
	var brand *model.Brand

	if err = run(StepBrandResearch, func() error {
		b, err := s.store.GetBrand(ctx, brandID)
		if err != nil {
			return err
		}
		brand = b
		return nil
	}); err != nil {
		return nil, err
	}

	if err = run(StepAnalysis, func() error {
		existing, err := s.analysis.Get(ctx, brandID)
		if err == nil {
			result.Analysis, result.AnalysisReused = existing, true
			return nil
		}
		if !repository.IsNotFound(err) {
			return err
		}
		result.Analysis, err = s.analysis.Enhance(ctx, brandID)
		return err
	}); err != nil {
		return nil, err
	}

	if err = run(StepIdeas, func() error {
		ideas, err := s.ideas.GenerateForBrand(ctx, brand, prompts.IdeaOptions{Count: s.opts.IdeaCount})
		if err != nil {
			return err
		}
		result.Ideas = ideas
		return nil
	}); err != nil {
		return nil, err
	}

	if err = run(StepScripts, func() error {
		scripts, err := s.generateScripts(ctx, brand, result.Ideas)
		if err != nil {
			return err
		}
		result.Scripts = scripts
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Pipeline completed",
		zap.String("brand_id", brandID),
		zap.Bool("analysis_reused", result.AnalysisReused),
		zap.Int("ideas", len(result.Ideas)),
		zap.Int("scripts", len(result.Scripts)))
	return result, nil
}

// generateScripts writes scripts for the first ScriptCount ideas in
// parallel. The first failure cancels the others. Results keep idea order.
func (s *pipelineServiceImpl) generateScripts(ctx context.Context, brand *model.Brand, ideas []model.Idea) ([]model.Script, error) {
	n := min(s.opts.ScriptCount, len(ideas))
	scripts := make([]model.Script, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		idea := ideas[i]
		g.Go(func() error {
			script, err := s.scripts.GenerateFor(gctx, prompts.IdeaConcept(idea), brand, &idea)
			if err != nil {
				return fmt.Errorf("script for idea %q: %w", idea.Title, err)
			}
			script.Concept = idea.Title + "\n\n" + idea.Description
			scripts[i] = *script
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scripts, nil
}
