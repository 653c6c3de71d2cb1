package score

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/relterm/vocab"
	"gonum.org/v1/gonum/stat"
)

// DefaultProgressEvery is how many scored base words pass between progress logs.
const DefaultProgressEvery = 1000

// Oracle provides ground-truth similarity between words.
type Oracle interface {
	// Known reports whether the oracle can score w.
	Known(w string) bool
	// Similarity returns the similarity of a and b, higher is more similar.
	Similarity(a, b string) float64
}

// Result summarizes a scoring run.
type Result struct {
	BaseWords  int     // base words with at least one scored candidate
	Candidates int     // scored candidates
	Mean       float64 // mean candidate score, 0 without candidates
	StdDev     float64 // sample standard deviation, 0 below two candidates
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithTargets restricts scoring to lines whose base word is in targets.
func WithTargets(targets vocab.WordSet) Option {
	return func(s *Scorer) {
		s.targets = targets
	}
}

// WithLogger enables progress logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scorer) {
		s.logger = l
	}
}

// WithProgressEvery sets the progress log interval in scored base words.
func WithProgressEvery(n int) Option {
	return func(s *Scorer) {
		s.every = n
	}
}

// Scorer scores ranked output files.
type Scorer struct {
	oracle  Oracle
	targets vocab.WordSet
	logger  *slog.Logger
	every   int
}

// NewScorer creates a scorer backed by oracle.
func NewScorer(oracle Oracle, opts ...Option) *Scorer {
	s := &Scorer{
		oracle: oracle,
		logger: slog.New(slog.DiscardHandler),
		every:  DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score reads ranked output lines from r.
func (s *Scorer) Score(ctx context.Context, r io.Reader) (Result, error) {
	var (
		res    Result
		scores []float64
		sum    float64
	)

	br := bufio.NewReaderSize(r, 1<<20)
	line := 0
	for {
		text, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return Result{}, fmt.Errorf("score: line %d: %w", line+1, rerr)
		}
		if text == "" && rerr == io.EOF {
			break
		}
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		fields := strings.Fields(strings.ToLower(text))
		if len(fields) > 0 && s.eligible(fields[0]) {
			base, scored := fields[0], false
			for _, w := range fields[1:] {
				if w == base || !s.oracle.Known(w) {
					continue
				}
				v := s.oracle.Similarity(base, w)
				scores = append(scores, v)
				sum += v
				scored = true
			}
			if scored {
				res.BaseWords++
				if s.every > 0 && res.BaseWords%s.every == 0 {
					s.logger.Info("scoring progress",
						slog.Int("base_words", res.BaseWords),
						slog.Float64("mean", sum/float64(len(scores))))
				}
			}
		}

		if rerr == io.EOF {
			break
		}
	}

	res.Candidates = len(scores)
	switch {
	case len(scores) >= 2:
		res.Mean, res.StdDev = stat.MeanStdDev(scores, nil)
	case len(scores) == 1:
		res.Mean = scores[0]
	}
	return res, nil
}

func (s *Scorer) eligible(base string) bool {
	if s.targets != nil && !s.targets.Contains(base) {
		return false
	}
	return s.oracle.Known(base)
}
