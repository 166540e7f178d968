package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/pipeline"
)

// Analyzer defines the interface for analyzing one map input
type Analyzer interface {
	Analyze(ctx context.Context, input pipeline.Input) (*model.AnalysisReport, error)
}

// AnalyzeJob represents one map analysis job
type AnalyzeJob struct {
	Input    pipeline.Input
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.Analyze(ctx, j.Input)
	if err != nil {
		return &AnalyzeResult{
			Subject: j.Input.Subject,
			Error:   err,
		}
	}
	return &AnalyzeResult{
		Subject: j.Input.Subject,
		Report:  report,
	}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	Subject string
	Report  *model.AnalysisReport
	Error   error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many map descriptions concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessInputs analyzes all inputs through the worker pool
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []pipeline.Input) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:    input,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads map descriptions from a file and analyzes them
// concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, inputs), nil
}

// ReadInputsFromFile reads map descriptions, one per line. A line may be
// "subject | description"; without the separator the leading words of
// the description double as the subject. Blank lines and #-comments are
// skipped; duplicate lines are dropped.
func ReadInputsFromFile(filePath string) ([]pipeline.Input, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []pipeline.Input
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		subject, description := splitInputLine(line)
		inputs = append(inputs, pipeline.Input{
			Subject:     subject,
			Description: description,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}

func splitInputLine(line string) (subject, description string) {
	if idx := strings.Index(line, "|"); idx >= 0 {
		subject = strings.TrimSpace(line[:idx])
		description = strings.TrimSpace(line[idx+1:])
		if subject != "" && description != "" {
			return subject, description
		}
	}

	words := strings.Fields(line)
	n := len(words)
	if n > 6 {
		n = 6
	}
	return strings.Join(words[:n], " "), line
}
