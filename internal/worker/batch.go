package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/verifai-labs/verifai/internal/model"
)

// Verifier runs one claim through the verification pipeline
type Verifier interface {
	Verify(ctx context.Context, claim, callerID string) (*model.Result, error)
}

// ClaimJob verifies a single claim within a batch
type ClaimJob struct {
	Pos      int
	Claim    string
	CallerID string
	Verifier Verifier
}

// ClaimResult pairs a batch position with its verification outcome.
// Err is non-nil only for rate-limit rejections.
type ClaimResult struct {
	Pos    int
	Claim  string
	Result *model.Result
	Err    error
}

// Index returns the claim's position in the submitted batch
func (r *ClaimResult) Index() int { return r.Pos }

// Execute runs the verification
func (j *ClaimJob) Execute(ctx context.Context) Result {
	res, err := j.Verifier.Verify(ctx, j.Claim, j.CallerID)
	return &ClaimResult{Pos: j.Pos, Claim: j.Claim, Result: res, Err: err}
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given parallelism
func NewBatchProcessor(v Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{verifier: v, concurrency: concurrency}
}

// ProcessClaims verifies all claims and returns results in input order
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string, callerID string) []*ClaimResult {
	if len(claims) == 0 {
		return []*ClaimResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit concurrently with collection: the pool's channels are bounded,
	// so a batch larger than the buffers must have Wait draining already.
	go func() {
		for i, claim := range claims {
			pool.Submit(&ClaimJob{Pos: i, Claim: claim, CallerID: callerID, Verifier: b.verifier})
		}
		pool.Done()
	}()

	raw := pool.Wait()
	out := make([]*ClaimResult, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.(*ClaimResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, path, callerID string) ([]*ClaimResult, error) {
	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims, callerID), nil
}

// ReadClaimsFromFile reads one claim per line, skipping blanks and # comments
func ReadClaimsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return claims, nil
}
