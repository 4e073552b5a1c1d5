package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"tapdlens/internal/llmclient"
	"tapdlens/internal/logging"
	"tapdlens/internal/tokencount"
)

// DefaultContextWindow is W, the LLM context-window size, per §4.11.
const DefaultContextWindow = 12000

// batchPause is the cooperative pause between sequential batches (§5).
const batchPause = 1 * time.Second

// Caller is the subset of llmclient.Client's Call this package needs.
type Caller interface {
	Call(ctx context.Context, creds llmclient.Credentials, prompt, model, endpoint string, maxTokens int) (string, error)
}

// Request parameterizes one evaluation run.
type Request struct {
	Cases         []TestCase
	Rubric        Rubric
	RequirementKB RequirementKB
	ContextWindow int // W; defaults to DefaultContextWindow
	Concurrency   int // P; defaults to 1 (sequential)
}

// Evaluate batches cases per §4.11's budget contract, sends one LLM call
// per batch, parses each reply's Markdown tables, and computes priority
// compliance. Per-batch API failures are recorded but do not abort
// remaining batches.
func Evaluate(ctx context.Context, caller Caller, creds llmclient.Credentials, counter *tokencount.Counter, req Request) (*Result, error) {
	runID := uuid.New().String()
	startedAt := time.Now().UTC().Format(time.RFC3339)
	log := logging.L().With(zap.String("run_id", runID))

	w := req.ContextWindow
	if w <= 0 {
		w = DefaultContextWindow
	}
	p := req.Concurrency
	if p <= 0 {
		p = 1
	}

	template := buildTemplate(req.Rubric)
	bgt := computeBudget(w, templateBaseTokens(counter, template))
	requirementInfo := renderRequirementInfo(req.RequirementKB)

	log.Info("evaluator budget resolved",
		zap.Int("context_window", w), zap.Int("template_tokens", bgt.TemplateTokens),
		zap.Int("request_budget", bgt.RequestBudget), zap.Int("response_budget", bgt.ResponseBudget),
		zap.Int("threshold", bgt.Threshold))

	if len(req.Cases) == 0 {
		return &Result{
			RunID:            runID,
			StartedAt:        startedAt,
			FinishedAt:       time.Now().UTC().Format(time.RFC3339),
			PriorityAnalysis: analyzePriority(nil, req.Rubric),
			Rubric:           req.Rubric,
		}, nil
	}

	batches := tokencount.SplitAll(req.Cases, func(c TestCase) int {
		return counter.Count(serializeCase(c))
	}, bgt.Threshold)

	caseEvals := make([][]CaseEvaluation, len(batches))
	failures := make([]*BatchFailure, len(batches))

	runBatch := func(i int) error {
		batch := batches[i]
		ids := caseIDs(batch)

		prompt := renderPrompt(template, requirementInfo, serializeCases(batch))
		reply, err := caller.Call(ctx, creds, prompt, "", "", bgt.ResponseBudget)
		if err != nil {
			log.Warn("evaluator batch call failed", zap.Int("batch", i), zap.Error(err))
			failures[i] = &BatchFailure{BatchIndex: i, Message: err.Error()}
			return nil
		}

		caseEvals[i] = parseBatchResponse(reply, ids)
		return nil
	}

	if p == 1 {
		for i := range batches {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("evaluator cancelled: %w", err)
			}
			if err := runBatch(i); err != nil {
				return nil, err
			}
			if i < len(batches)-1 {
				select {
				case <-ctx.Done():
					return nil, fmt.Errorf("evaluator cancelled: %w", ctx.Err())
				case <-time.After(batchPause):
				}
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p)
		for i := range batches {
			i := i
			stagger := time.Duration(i/p) * batchPause
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-time.After(stagger):
				}
				return runBatch(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("evaluator cancelled: %w", err)
		}
	}

	var evaluations []CaseEvaluation
	var batchFailures []BatchFailure
	for i := range batches {
		evaluations = append(evaluations, caseEvals[i]...)
		if failures[i] != nil {
			batchFailures = append(batchFailures, *failures[i])
		}
	}

	return &Result{
		RunID:            runID,
		Evaluations:      evaluations,
		TotalCount:       len(req.Cases),
		StartedAt:        startedAt,
		FinishedAt:       time.Now().UTC().Format(time.RFC3339),
		PriorityAnalysis: analyzePriority(req.Cases, req.Rubric),
		Rubric:           req.Rubric,
		BatchFailures:    batchFailures,
	}, nil
}

func caseIDs(cases []TestCase) []string {
	ids := make([]string, len(cases))
	for i, c := range cases {
		ids[i] = c.ID
	}
	return ids
}

func serializeCase(c TestCase) string {
	b, _ := json.Marshal(c)
	return string(b)
}

func serializeCases(cases []TestCase) string {
	b, _ := json.MarshalIndent(cases, "", "  ")
	return string(b)
}
