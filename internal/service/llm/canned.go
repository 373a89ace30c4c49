package llm

import (
	"context"
	"fmt"
	"sync/atomic"
)

// CannedProvider returns fixed text without calling any API. Used for
// local development (DEFAULT_PROVIDER=canned) and in service tests.
type CannedProvider struct {
	// Response is returned verbatim from every Complete call. When
	// empty, a short placeholder naming the call index is returned.
	Response string

	// Err, when set, is returned from every Complete call.
	Err error

	calls atomic.Int64
}

// Name returns the provider name.
func (p *CannedProvider) Name() string {
	return "canned"
}

// Calls reports how many completions were requested.
func (p *CannedProvider) Calls() int {
	return int(p.calls.Load())
}

// Complete returns the canned response.
func (p *CannedProvider) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	n := p.calls.Add(1)
	if p.Err != nil {
		return "", p.Err
	}
	if p.Response != "" {
		return p.Response, nil
	}
	return fmt.Sprintf("generated content %d", n), nil
}
