// Package verify wires the full verification pipeline: admission control,
// pre-filtering, source retrieval, the adversarial debate, judgment, and the
// settlement decision. Every stage failure degrades into a well-formed
// Result; Verify only returns an error when the caller is rate limited.
package verify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/verifai-labs/verifai/internal/agents"
	"github.com/verifai-labs/verifai/internal/cache"
	"github.com/verifai-labs/verifai/internal/debate"
	"github.com/verifai-labs/verifai/internal/economics"
	"github.com/verifai-labs/verifai/internal/llm"
	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/prefilter"
	"github.com/verifai-labs/verifai/internal/ratelimit"
	"github.com/verifai-labs/verifai/internal/search"
)

// Confidence reported for claims rejected by the pre-filter. Low enough to
// guarantee a refund under any sane floor configuration.
const preFilterConfidence = 0.30

// Service runs claim verifications end to end
type Service struct {
	cfg       *model.Config
	window    *ratelimit.Window
	retriever search.Retriever
	orch      *debate.Orchestrator
	judge     *agents.Judge
	engine    *economics.Engine
	perf      *PerfLog
	logger    *log.Logger
	now       func() time.Time
}

// NewService builds a service from configuration. Provider API keys are
// resolved from the environment; a missing key fails construction so the
// operator finds out before any request is accepted.
func NewService(cfg *model.Config, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}

	prover, err := buildAdvocate(agents.RoleProver, cfg.Agents.Prover, logger)
	if err != nil {
		return nil, err
	}
	debunker, err := buildAdvocate(agents.RoleDebunker, cfg.Agents.Debunker, logger)
	if err != nil {
		return nil, err
	}
	judge, err := buildJudge(cfg.Agents.Judge, logger)
	if err != nil {
		return nil, err
	}

	var searchCache cache.Cache
	if cfg.Cache.Enabled {
		searchCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	return &Service{
		cfg:       cfg,
		window:    ratelimit.NewWindow(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		retriever: search.NewClient(cfg.Search, cfg.HTTP, searchCache, cfg.Cache.TTL),
		orch:      debate.NewOrchestrator(prover, debunker, cfg.Agents.DebateTimeout, logger),
		judge:     judge,
		engine:    economics.NewEngine(cfg.Economics),
		perf:      NewPerfLog(cfg.Output.PerfLogPath, logger),
		logger:    logger,
		now:       time.Now,
	}, nil
}

func buildAdvocate(role agents.Role, cfg model.AgentModelConfig, logger *log.Logger) (*agents.Advocate, error) {
	primary, fallback, err := buildProviders(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	return agents.NewAdvocate(role, primary, fallback, cfg, logger), nil
}

func buildJudge(cfg model.AgentModelConfig, logger *log.Logger) (*agents.Judge, error) {
	primary, fallback, err := buildProviders(cfg)
	if err != nil {
		return nil, fmt.Errorf("judge: %w", err)
	}
	return agents.NewJudge(primary, fallback, cfg, logger), nil
}

func buildProviders(cfg model.AgentModelConfig) (primary, fallback llm.Provider, err error) {
	timeoutSeconds := int(cfg.CallTimeout / time.Second)

	primary, err = llm.NewProvider(llm.ConfigFromEnv(cfg.Provider, timeoutSeconds))
	if err != nil {
		return nil, nil, err
	}
	if cfg.FallbackProvider != "" {
		fallback, err = llm.NewProvider(llm.ConfigFromEnv(cfg.FallbackProvider, timeoutSeconds))
		if err != nil {
			return nil, nil, err
		}
	}
	return primary, fallback, nil
}

// Verify runs one claim through the pipeline. The returned error is non-nil
// only when the caller exceeds the rate limit; every other failure mode is
// expressed inside the Result.
func (s *Service) Verify(ctx context.Context, claim, callerID string) (*model.Result, error) {
	r, err := s.verify(ctx, claim, callerID)
	if r != nil {
		s.record(r)
	}
	return r, err
}

// verify is the unlogged core. VerifyBatch uses it directly so entries are
// recorded at the billed price after the volume discount is applied.
func (s *Service) verify(ctx context.Context, claim, callerID string) (result *model.Result, err error) {
	if admitErr := s.window.Admit(callerID); admitErr != nil {
		s.logger.Printf("level=warn stage=admission caller=%s err=%v", callerID, admitErr)
		return nil, admitErr
	}

	start := s.now()
	var trail []string
	trail = append(trail, "admission: accepted")

	// Any panic downstream settles as a refunded system error, never a crash.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("level=error stage=pipeline panic=%v", r)
			result = s.systemErrorResult(claim, model.ClaimFactual, start,
				append(trail, fmt.Sprintf("panic: %v", r)))
			err = nil
		}
	}()

	// Pre-filter before any paid call so unverifiable claims cost nothing.
	class := prefilter.Classify(claim)
	if class.IsPhilosophical {
		trail = append(trail, "pre_filter: rejected ("+class.Reason+")")
		return s.preFilteredResult(claim, class.Reason, start, trail), nil
	}

	kind := model.ClaimFactual
	if class.IsPrediction {
		kind = model.ClaimPrediction
	}
	trail = append(trail, "pre_filter: passed ("+string(kind)+")")

	sources, retErr := s.retriever.Retrieve(ctx, claim)
	if retErr != nil {
		s.logger.Printf("level=error stage=retrieval err=%v", retErr)
		return s.systemErrorResult(claim, kind, start, append(trail, "retrieval: failed")), nil
	}
	search.ApplyWeights(sources, s.now())
	trail = append(trail, fmt.Sprintf("retrieval: %d sources", len(sources)))

	sourceTexts := make([]string, 0, len(sources))
	for _, src := range sources {
		sourceTexts = append(sourceTexts, src.Text)
	}

	var ledger economics.Ledger

	deb, debErr := s.orch.Debate(ctx, claim, sourceTexts, kind.IsPrediction())
	if debErr != nil {
		s.logger.Printf("level=error stage=debate err=%v", debErr)
		r := s.systemErrorResult(claim, kind, start, append(trail, "debate: "+debErr.Error()))
		r.Citations = sources
		return r, nil
	}
	ledger.Prover = deb.Prover.Receipt
	ledger.Debunker = deb.Debunker.Receipt
	if deb.SoftFailed() {
		trail = append(trail, "debate: completed with soft failure")
	} else {
		trail = append(trail, "debate: completed")
	}

	verdict, judgeReceipt := s.judge.Adjudicate(ctx, claim, sources,
		deb.Prover.Text, deb.Debunker.Text, kind.IsPrediction())
	ledger.Judge = judgeReceipt
	trail = append(trail, fmt.Sprintf("judge: %s (%.2f)", verdict.Label, verdict.Confidence))

	decision := s.engine.Decide(verdict.Label, verdict.Confidence, deb.SoftFailed(), kind)
	trail = append(trail, "settlement: "+string(decision.PaymentStatus))

	r := &model.Result{
		Claim:           claim,
		ClaimKind:       kind,
		Verdict:         decision.FinalVerdict,
		Confidence:      verdict.Confidence,
		Summary:         verdict.Reasoning,
		EvidenceFor:     verdict.EvidenceFor,
		EvidenceAgainst: verdict.EvidenceAgainst,
		Citations:       sources,
		Debate: model.Debate{
			Prover:   deb.Prover.Text,
			Debunker: deb.Debunker.Text,
		},
		ManualReview:     decision.ManualReview,
		PaymentStatus:    decision.PaymentStatus,
		AuditTrail:       strings.Join(trail, " | "),
		TotalCostUSD:     ledger.TotalCostUSD(),
		ExecutionSeconds: s.now().Sub(start).Seconds(),
	}
	if !decision.Refunded() {
		r.PriceUSD = s.engine.PriceUSD()
	}
	return r, nil
}

// preFilteredResult settles a philosophical claim without any model spend
func (s *Service) preFilteredResult(claim, reason string, start time.Time, trail []string) *model.Result {
	return &model.Result{
		Claim:            claim,
		ClaimKind:        model.ClaimPhilosophical,
		Verdict:          model.VerdictInconclusive,
		Confidence:       preFilterConfidence,
		Summary:          "This claim expresses a normative or philosophical position and cannot be verified against factual sources.",
		ManualReview:     true,
		PaymentStatus:    model.PaymentRefundedUncertainty,
		PreFiltered:      true,
		FilterReason:     reason,
		AuditTrail:       strings.Join(trail, " | "),
		ExecutionSeconds: s.now().Sub(start).Seconds(),
	}
}

// systemErrorResult settles any infrastructure failure as a refunded error
func (s *Service) systemErrorResult(claim string, kind model.ClaimKind, start time.Time, trail []string) *model.Result {
	decision := economics.SystemError()
	return &model.Result{
		Claim:            claim,
		ClaimKind:        kind,
		Verdict:          decision.FinalVerdict,
		Confidence:       0,
		Summary:          "Verification could not be completed due to a system error. The charge has been refunded.",
		ManualReview:     decision.ManualReview,
		PaymentStatus:    decision.PaymentStatus,
		AuditTrail:       strings.Join(trail, " | "),
		ExecutionSeconds: s.now().Sub(start).Seconds(),
	}
}

func (s *Service) record(r *model.Result) {
	if s.perf == nil {
		return
	}
	s.perf.Record(entryFor(r, s.now()))
}
