// Package overview builds a bounded-length LLM digest of an issue dataset,
// falling back to partition-summarize-merge when the whole slice can't fit
// a single prompt, mirroring the original context optimizer's chunk-then-
// recursively-merge pipeline.
package overview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"tapdlens/internal/issuedata"
	"tapdlens/internal/llmclient"
	"tapdlens/internal/logging"
	"tapdlens/internal/textextract"
	"tapdlens/internal/tokencount"
)

// DefaultBudget is B, the max-total-token budget, per §4.10.
const DefaultBudget = 12000

// promptOverheadTokens is a conservative fixed estimate of the instruction
// text wrapped around the serialized records, left out of the caller's
// accounting.
const promptOverheadTokens = 200

// expectedResponseTokens is reserved headroom for the model's reply.
const expectedResponseTokens = 800

// Caller is the subset of llmclient.Client's Call this package needs,
// letting tests substitute a fake.
type Caller interface {
	Call(ctx context.Context, creds llmclient.Credentials, prompt, model, endpoint string, maxTokens int) (string, error)
}

// Request parameterizes a single overview build.
type Request struct {
	Dataset       *issuedata.Dataset
	Since, Until  *time.Time
	MaxTotalTokens int
	UseCachedOnly  bool // when true, never calls the LLM; returns a statistics-only digest
}

// Result is C10's output, per §4.10.
type Result struct {
	Digest          string `json:"digest"`
	StoriesConsidered int  `json:"stories_considered"`
	BugsConsidered    int  `json:"bugs_considered"`
	Groups            int  `json:"groups"`
}

// Build filters records by the requested date range, then either sends the
// whole filtered slice in one prompt (if it fits the budget) or partitions
// it into token-bounded groups, summarizes each, and merges the summaries
// into one digest with a single further call (none when there is only one
// group).
func Build(ctx context.Context, caller Caller, creds llmclient.Credentials, counter *tokencount.Counter, req Request) (*Result, error) {
	budget := req.MaxTotalTokens
	if budget <= 0 {
		budget = DefaultBudget
	}

	stories := filterByRange(req.Dataset.Stories, req.Since, req.Until)
	bugs := filterByRange(req.Dataset.Bugs, req.Since, req.Until)

	log := logging.L()
	log.Info("building overview", zap.Int("stories", len(stories)), zap.Int("bugs", len(bugs)), zap.Int("budget", budget))

	all := make([]issuedata.Record, 0, len(stories)+len(bugs))
	all = append(all, stories...)
	all = append(all, bugs...)

	result := &Result{StoriesConsidered: len(stories), BugsConsidered: len(bugs)}

	if len(all) == 0 {
		result.Digest = "no records in range"
		result.Groups = 0
		return result, nil
	}

	if req.UseCachedOnly {
		result.Digest = fmt.Sprintf("cached-only digest: %d stories, %d bugs in range", len(stories), len(bugs))
		result.Groups = 1
		return result, nil
	}

	serialized := serializeAll(all)
	threshold := budget - promptOverheadTokens - expectedResponseTokens

	if counter.Count(serialized) < threshold {
		digest, err := summarizeWhole(ctx, caller, creds, serialized)
		if err != nil {
			return nil, err
		}
		result.Digest = digest
		result.Groups = 1
		return result, nil
	}

	groups := partition(all, counter, threshold)
	result.Groups = len(groups)

	paragraphs := make([]string, 0, len(groups))
	for i, g := range groups {
		p, err := summarizeGroup(ctx, caller, creds, g)
		if err != nil {
			return nil, fmt.Errorf("summarize group %d/%d: %w", i+1, len(groups), err)
		}
		paragraphs = append(paragraphs, p)
	}

	digest, err := mergeParagraphs(ctx, caller, creds, paragraphs)
	if err != nil {
		return nil, err
	}
	result.Digest = digest
	return result, nil
}

func filterByRange(records []issuedata.Record, since, until *time.Time) []issuedata.Record {
	if since == nil && until == nil {
		return records
	}
	out := make([]issuedata.Record, 0, len(records))
	for _, r := range records {
		t, ok := parseDate(r.CreatedAt)
		if !ok {
			continue
		}
		if since != nil && t.Before(*since) {
			continue
		}
		if until != nil && t.After(*until) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	datePart := strings.SplitN(s, " ", 2)[0]
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func serializeAll(records []issuedata.Record) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = textextract.Extract(r)
	}
	return strings.Join(parts, "\n")
}

// partition splits records into groups whose serialized text each fits
// within threshold, using the same greedy forced-progress rule as C3's
// batch splitter (see tokencount.SplitAll): the first item in an empty
// group is always accepted, even if it alone exceeds threshold.
func partition(records []issuedata.Record, counter *tokencount.Counter, threshold int) [][]issuedata.Record {
	return tokencount.SplitAll(records, func(r issuedata.Record) int {
		return counter.Count(textextract.Extract(r))
	}, threshold)
}

func summarizeWhole(ctx context.Context, caller Caller, creds llmclient.Credentials, serialized string) (string, error) {
	prompt := "Summarize the following issue-tracker records into a single concise project overview:\n\n" + serialized
	return caller.Call(ctx, creds, prompt, "", "", expectedResponseTokens)
}

func summarizeGroup(ctx context.Context, caller Caller, creds llmclient.Credentials, group []issuedata.Record) (string, error) {
	prompt := "Summarize this subset of issue-tracker records into one bounded paragraph:\n\n" + serializeAll(group)
	return caller.Call(ctx, creds, prompt, "", "", expectedResponseTokens)
}

func mergeParagraphs(ctx context.Context, caller Caller, creds llmclient.Credentials, paragraphs []string) (string, error) {
	if len(paragraphs) == 1 {
		return paragraphs[0], nil
	}
	var b strings.Builder
	for i, p := range paragraphs {
		fmt.Fprintf(&b, "Section %d:\n%s\n\n", i+1, p)
	}
	prompt := "Merge the following section summaries into one coherent project overview:\n\n" + b.String()
	return caller.Call(ctx, creds, prompt, "", "", expectedResponseTokens)
}
