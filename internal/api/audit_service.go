package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/paystub"
	"shifttrack/internal/reconcile"
	"shifttrack/internal/shift"
)

// AuditStore abstracts the reads the audit service needs.
type AuditStore interface {
	ListShifts(ctx context.Context) ([]shift.Record, error)
}

// DocumentExtractor converts a paystub document into plain text.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ReconcileInput names a pay period and the hours the paystub claims for it.
// A nil ClaimedHours means the paystub did not yield a usable total.
type ReconcileInput struct {
	BeginDate    string   `json:"beginDate"`
	EndDate      string   `json:"endDate"`
	ClaimedHours *float64 `json:"claimedHours"`
}

// AuditResponse pairs the raw field extraction with the graded verdict.
type AuditResponse struct {
	Extracted ExtractResponse   `json:"extracted"`
	Verdict   ReconcileResponse `json:"verdict"`
}

// AuditService extracts paystub fields and reconciles claimed hours against
// recorded shifts.
type AuditService struct {
	store     AuditStore
	extractor DocumentExtractor
	notifier  notifications.Service
	logger    *slog.Logger
}

// NewAuditService wires an audit service. The notifier may be the noop
// implementation.
func NewAuditService(store AuditStore, extractor DocumentExtractor, notifier notifications.Service, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:     store,
		extractor: extractor,
		notifier:  notifier,
		logger:    logging.NewComponentLogger(logger, "audit"),
	}
}

// ExtractDocument converts the document at path and runs the field rules over
// its text. Fields the rules cannot find come back empty.
func (s *AuditService) ExtractDocument(ctx context.Context, path string) (ExtractResponse, error) {
	if s == nil || s.extractor == nil {
		return ExtractResponse{}, fmt.Errorf("audit service unavailable")
	}
	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		if s.notifier != nil {
			if notifyErr := s.notifier.NotifyError(ctx, err, "paystub extraction"); notifyErr != nil {
				s.logger.Warn("error notification failed", logging.Error(notifyErr))
			}
		}
		return ExtractResponse{}, err
	}
	result := paystub.Extract(text)
	return ExtractResponse{
		BeginDate:  result.BeginDate,
		EndDate:    result.EndDate,
		TotalHours: result.TotalHours,
	}, nil
}

// Reconcile grades claimed hours against the hours recorded inside the claim
// window and fires an audit notification with the verdict.
func (s *AuditService) Reconcile(ctx context.Context, input ReconcileInput) (ReconcileResponse, error) {
	if s == nil || s.store == nil {
		return ReconcileResponse{}, fmt.Errorf("audit service unavailable")
	}
	records, err := s.store.ListShifts(ctx)
	if err != nil {
		return ReconcileResponse{}, fmt.Errorf("list shifts: %w", err)
	}
	// Hours derive from clock stamps alone, so no rate table is needed here.
	enriched := shift.EnrichAll(records, shift.NewRateTable(nil, 0))

	claim := reconcile.Claim{
		BeginDate: input.BeginDate,
		EndDate:   input.EndDate,
		Hours:     input.ClaimedHours,
	}
	verdict := reconcile.Reconcile(claim, enriched)
	response := ReconcileResponse{
		Tier:          string(verdict.Tier),
		ComputedHours: verdict.ComputedHours,
		ClaimedHours:  verdict.ClaimedHours,
		PercentDiff:   verdict.PercentDiff,
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyAuditVerdict(ctx, response.Tier, response.ComputedHours, response.ClaimedHours); err != nil {
			s.logger.Warn("audit notification failed", logging.Error(err))
		}
	}
	return response, nil
}

// AuditDocument runs extraction and reconciliation as one step: the extracted
// pay period and total feed the claim directly. Missing or unparseable totals
// degrade to a needs_claim verdict instead of failing.
func (s *AuditService) AuditDocument(ctx context.Context, path string) (AuditResponse, error) {
	extracted, err := s.ExtractDocument(ctx, path)
	if err != nil {
		return AuditResponse{}, err
	}
	verdict, err := s.Reconcile(ctx, ReconcileInput{
		BeginDate:    extracted.BeginDate,
		EndDate:      extracted.EndDate,
		ClaimedHours: parseClaimedHours(extracted.TotalHours),
	})
	if err != nil {
		return AuditResponse{}, err
	}
	return AuditResponse{Extracted: extracted, Verdict: verdict}, nil
}

func parseClaimedHours(value string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return nil
	}
	hours, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &hours
}
