// Package tokencount counts tokens for budgeting, preferring an exact
// tokenizer and falling back to a CJK-aware heuristic.
package tokencount

import (
	"math"
	"os"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
	"tapdlens/internal/logging"
)

// Counter is a process-wide, read-only-after-init token counter. Safe for
// concurrent use once constructed.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New builds a Counter. cacheDir, if non-empty, points at a local bundled
// encoding snapshot directory (TIKTOKEN_CACHE_DIR convention); when the
// encoding cannot be loaded from there (or at all), Count transparently
// falls back to the heuristic estimator instead of failing.
func New(cacheDir string) *Counter {
	if cacheDir != "" {
		_ = os.Setenv("TIKTOKEN_CACHE_DIR", cacheDir)
	}

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logging.L().Warn("tokenizer snapshot unavailable, using heuristic token counting", zap.Error(err))
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the token count for text: exact via the bundled tokenizer
// when available, else the heuristic ceil(cjk/1.5) + ceil(other/4).
func (c *Counter) Count(text string) int {
	if c.enc != nil {
		if n, ok := c.tryExact(text); ok {
			return n
		}
	}
	return HeuristicCount(text)
}

func (c *Counter) tryExact(text string) (n int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.L().Warn("tokenizer panicked during encode, falling back to heuristic", zap.Any("recover", r))
			ok = false
		}
	}()
	return len(c.enc.Encode(text, nil, nil)), true
}

// HeuristicCount is the fallback estimator used when no exact tokenizer is
// available: ceil(CJK/1.5) + ceil(non-CJK/4), where CJK is code points in
// the common CJK ideograph ranges.
func HeuristicCount(text string) int {
	var cjk, other int
	for _, r := range text {
		if isCJK(r) {
			cjk++
		} else {
			other++
		}
	}
	return int(math.Ceil(float64(cjk)/1.5)) + int(math.Ceil(float64(other)/4))
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // fullwidth forms
}
