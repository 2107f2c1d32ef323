package nlp

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Analyzer produces an Analysis for a request. Satisfied by *Client
// and by Fallback.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Analysis, error)
}

// Fallback is the pure offline analyzer.
type Fallback struct{}

func (Fallback) Analyze(_ context.Context, req Request) (Analysis, error) {
	return Analyze(req.Text), nil
}

// Chained tries the remote analyzer first and degrades to the local
// heuristics on any failure. With no remote configured it is just the
// heuristics.
type Chained struct {
	remote Analyzer
}

// NewChained wires an optional remote analyzer in front of the local
// heuristics. remote may be nil.
func NewChained(remote Analyzer) *Chained {
	return &Chained{remote: remote}
}

func (c *Chained) Analyze(ctx context.Context, req Request) (Analysis, error) {
	if c.remote != nil {
		a, err := c.remote.Analyze(ctx, req)
		if err == nil {
			return a, nil
		}
		log.WithError(err).Debug("remote analysis failed, using local heuristics")
	}
	return Analyze(req.Text), nil
}
