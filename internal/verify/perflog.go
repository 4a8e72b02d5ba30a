package verify

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/verifai-labs/verifai/internal/model"
)

// PerfEntry is one JSONL line in the performance log
type PerfEntry struct {
	Timestamp        time.Time           `json:"timestamp"`
	Claim            string              `json:"claim"`
	ClaimKind        model.ClaimKind     `json:"claim_type"`
	Verdict          model.VerdictLabel  `json:"verdict"`
	Confidence       float64             `json:"confidence_score"`
	PaymentStatus    model.PaymentStatus `json:"payment_status"`
	ManualReview     bool                `json:"manual_review"`
	PreFiltered      bool                `json:"pre_filtered"`
	TotalCostUSD     float64             `json:"total_cost_usd"`
	PriceUSD         float64             `json:"price_usd"`
	ExecutionSeconds float64             `json:"execution_time_seconds"`
}

func entryFor(r *model.Result, at time.Time) PerfEntry {
	return PerfEntry{
		Timestamp:        at.UTC(),
		Claim:            r.Claim,
		ClaimKind:        r.ClaimKind,
		Verdict:          r.Verdict,
		Confidence:       r.Confidence,
		PaymentStatus:    r.PaymentStatus,
		ManualReview:     r.ManualReview,
		PreFiltered:      r.PreFiltered,
		TotalCostUSD:     r.TotalCostUSD,
		PriceUSD:         r.PriceUSD,
		ExecutionSeconds: r.ExecutionSeconds,
	}
}

// PerfLog appends verification outcomes to a JSONL file. Writes are best
// effort: a log failure is reported to the logger and never fails a request.
type PerfLog struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewPerfLog returns nil when path is empty, disabling logging
func NewPerfLog(path string, logger *log.Logger) *PerfLog {
	if path == "" {
		return nil
	}
	return &PerfLog{path: path, logger: logger}
}

// Record appends one entry to the log file, creating directories as needed
func (p *PerfLog) Record(e PerfEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		p.logger.Printf("level=warn stage=perflog err=%v", err)
		return
	}
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		p.logger.Printf("level=warn stage=perflog err=%v", err)
		return
	}
	defer func() { _ = f.Close() }()

	line, err := json.Marshal(e)
	if err != nil {
		p.logger.Printf("level=warn stage=perflog err=%v", err)
		return
	}
	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		p.logger.Printf("level=warn stage=perflog err=%v", err)
	}
}

// Summary aggregates a performance log for the metrics command
type Summary struct {
	Requests     int     `json:"requests"`
	Settled      int     `json:"settled"`
	Refunded     int     `json:"refunded"`
	PreFiltered  int     `json:"pre_filtered"`
	SystemErrors int     `json:"system_errors"`
	ReviewRate   float64 `json:"review_rate"`
	SettleRate   float64 `json:"settle_rate"`

	AvgConfidence float64 `json:"avg_confidence"`
	AvgExecution  float64 `json:"avg_execution_seconds"`

	TotalCostUSD    float64 `json:"total_cost_usd"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
	NetMarginUSD    float64 `json:"net_margin_usd"`
}

// Summarize reads a JSONL performance log and aggregates it.
// Malformed lines are skipped rather than failing the whole summary.
func Summarize(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open performance log: %w", err)
	}
	defer func() { _ = f.Close() }()

	s := &Summary{}
	reviewed := 0
	var confSum, execSum float64

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e PerfEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		s.Requests++
		switch e.PaymentStatus {
		case model.PaymentSettled:
			s.Settled++
		case model.PaymentRefundedSystemError:
			s.Refunded++
			s.SystemErrors++
		default:
			s.Refunded++
		}
		if e.PreFiltered {
			s.PreFiltered++
		}
		if e.ManualReview {
			reviewed++
		}
		confSum += e.Confidence
		execSum += e.ExecutionSeconds
		s.TotalCostUSD += e.TotalCostUSD
		s.TotalRevenueUSD += e.PriceUSD
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read performance log: %w", err)
	}

	if s.Requests > 0 {
		n := float64(s.Requests)
		s.ReviewRate = float64(reviewed) / n
		s.SettleRate = float64(s.Settled) / n
		s.AvgConfidence = confSum / n
		s.AvgExecution = execSum / n
	}
	s.NetMarginUSD = s.TotalRevenueUSD - s.TotalCostUSD
	return s, nil
}
