package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/chronomap/internal/cache"
	"github.com/ppiankov/chronomap/internal/explain"
	"github.com/ppiankov/chronomap/internal/extract"
	"github.com/ppiankov/chronomap/internal/infer"
	"github.com/ppiankov/chronomap/internal/knowledge"
	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/vision"
)

// Pipeline orchestrates one map analysis: tokens through knowledge-base
// lookup, year extraction and visual analysis into fused signals, then
// inference and explanation.
type Pipeline struct {
	kb        *knowledge.KnowledgeBase
	years     *extract.YearExtractor
	engine    *infer.Engine
	explainer *explain.Generator
	analyzer  vision.Provider // nil when visual analysis is disabled
	reports   cache.Cache     // nil when caching is disabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	kb, err := knowledge.NewKnowledgeBase(cfg.Knowledge, cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("knowledge base: %w", err)
	}

	var analyzer vision.Provider
	if cfg.Vision.Provider != "" {
		analyzer, err = vision.NewProvider(cfg.Vision)
		if err != nil {
			// Visual analysis is advisory; a broken provider degrades to
			// text-only analysis rather than failing the run.
			fmt.Fprintf(os.Stderr, "Warning: vision provider unavailable: %v\n", err)
			analyzer = nil
		}
	}

	var reports cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			reports = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			reports = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	engine := infer.NewEngine(cfg.Horizon, cfg.Inference)

	return &Pipeline{
		kb:        kb,
		years:     extract.NewYearExtractor(cfg.Inference, cfg.Horizon),
		engine:    engine,
		explainer: explain.NewGenerator(engine, cfg.Output.Verbose),
		analyzer:  analyzer,
		reports:   reports,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}, nil
}

// Engine exposes the inference engine, for callers that need to rescore
// or re-explain an estimate.
func (p *Pipeline) Engine() *infer.Engine {
	return p.engine
}

// Input describes one map to analyze. Tokens take precedence over
// Description when both are set.
type Input struct {
	Subject     string
	Source      string
	Description string
	Tokens      []model.OCRToken
	ImageURL    string
}

// Analyze runs the full pipeline on one input and returns the report.
func (p *Pipeline) Analyze(ctx context.Context, input Input) (*model.AnalysisReport, error) {
	tokens := input.Tokens
	if tokens == nil {
		tokens = extract.Tokenize(input.Description)
	}

	key := cache.Key(input.Subject + "\x00" + input.Description + "\x00" + input.ImageURL)
	if p.reports != nil {
		if data, found := p.reports.Get(key); found {
			var cached model.AnalysisReport
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// A corrupt entry falls through to a fresh analysis.
			_ = p.reports.Delete(key)
		}
	}

	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	matches := p.kb.Lookup(words)

	signals := knowledge.EntitySignals(matches, p.config.Inference)

	yearSignals := p.years.Extract(tokens)
	signals = append(signals, yearSignals...)

	visualCount := 0
	if p.analyzer != nil && input.ImageURL != "" {
		resp, err := p.analyzer.Analyze(ctx, vision.AnalyzeRequest{
			ImageURL: input.ImageURL,
			Hint:     input.Subject,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: visual analysis failed: %v\n", err)
		} else {
			visualSignals := extract.VisualSignals(resp.Features, p.config.Horizon)
			visualCount = len(visualSignals)
			signals = append(signals, visualSignals...)
		}
	}

	estimate := p.engine.Infer(signals)

	report := &model.AnalysisReport{
		Subject:     input.Subject,
		Source:      input.Source,
		AnalyzedAt:  time.Now().UTC(),
		Estimate:    estimate,
		Explanation: p.explainer.Generate(estimate),
		Inputs: model.InputSummary{
			Tokens:         len(tokens),
			EntityMatches:  len(matches),
			YearReferences: len(yearSignals),
			VisualFeatures: visualCount,
		},
	}

	if p.reports != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.reports.Set(key, data, 0)
		}
	}

	return report, nil
}

// RenderReport renders the report to the requested outputs and prints a
// summary to stdout.
func (p *Pipeline) RenderReport(report *model.AnalysisReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
