package server

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/output"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

const maxProjectionYears = 150

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type summaryResponse struct {
	Summary   domain.RetirementIncomeSummary `json:"summary"`
	Readiness output.Readiness               `json:"readiness"`
	Warnings  []string                       `json:"warnings"`
}

type timelineResponse struct {
	Timeline domain.Timeline `json:"timeline"`
	Warnings []string        `json:"warnings"`
}

type projectionRequest struct {
	Account     domain.Account             `json:"account"`
	CurrentAge  int                        `json:"current_age"`
	Years       int                        `json:"years"`
	Assumptions domain.EconomicAssumptions `json:"assumptions"`
}

type projectionResponse struct {
	Projections []domain.YearProjection `json:"projections"`
}

type taxRequest struct {
	Income       decimal.Decimal `json:"income"`
	FilingStatus string          `json:"filing_status"`
}

type taxResponse struct {
	TaxYear       int                 `json:"tax_year"`
	FilingStatus  domain.FilingStatus `json:"filing_status"`
	Income        decimal.Decimal     `json:"income"`
	Tax           decimal.Decimal     `json:"tax"`
	MarginalRate  decimal.Decimal     `json:"marginal_rate"`
	EffectiveRate decimal.Decimal     `json:"effective_rate"`
}

type limitEntry struct {
	Type        domain.AccountType `json:"type"`
	Label       string             `json:"label"`
	Limit       decimal.Decimal    `json:"limit"`
	Description string             `json:"description,omitempty"`
}

type limitsResponse struct {
	TaxYear int          `json:"tax_year"`
	Age     int          `json:"age"`
	Limits  []limitEntry `json:"limits"`
}

type claimAgesResponse struct {
	MonthlyEarnings decimal.Decimal         `json:"monthly_earnings"`
	DeathAge        int                     `json:"death_age"`
	Options         []domain.ClaimAgeOption `json:"options"`
	BreakEvenAge    int                     `json:"break_even_age"`
	EarlyClaimAge   int                     `json:"early_claim_age"`
	LateClaimAge    int                     `json:"late_claim_age"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// decodePlan parses and validates the plan in the request body, writing the
// error response itself when it fails.
func (s *Server) decodePlan(ctx *fasthttp.RequestCtx) (*domain.Plan, []string, bool) {
	plan, warnings, err := s.Parser.DecodeJSON(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, nil, false
	}
	if err := s.Parser.ValidatePlan(plan); err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}
	if warnings == nil {
		warnings = []string{}
	}
	return plan, warnings, true
}

func (s *Server) handleSummary(ctx *fasthttp.RequestCtx) {
	plan, warnings, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	result, err := s.Engine.RunPlan(ctx, *plan)
	if err != nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, summaryResponse{
		Summary:   result.Summary,
		Readiness: output.AssessReadiness(result),
		Warnings:  warnings,
	})
}

func (s *Server) handleTimeline(ctx *fasthttp.RequestCtx) {
	plan, warnings, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, timelineResponse{
		Timeline: s.Engine.Timeline(*plan),
		Warnings: warnings,
	})
}

var reportContentTypes = map[string]string{
	"console":      "text/plain; charset=utf-8",
	"csv":          "text/csv; charset=utf-8",
	"timeline-csv": "text/csv; charset=utf-8",
	"html":         "text/html; charset=utf-8",
	"json":         "application/json",
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = "json"
	}
	plan, _, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	result, err := s.Engine.RunPlan(ctx, *plan)
	if err != nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.GenerateReport(result, format, &buf); err != nil {
		if errors.Is(err, output.ErrUnsupportedFormat) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(reportContentTypes[output.NormalizeFormatName(format)])
	ctx.SetBody(buf.Bytes())
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	accountType, err := domain.ParseAccountType(string(req.Account.Type))
	if err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Years < 0 || req.Years > maxProjectionYears {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, fmt.Sprintf("years must be between 0 and %d", maxProjectionYears))
		return
	}
	req.Account.Type = accountType

	writeJSON(ctx, fasthttp.StatusOK, projectionResponse{
		Projections: s.Engine.ProjectAccount(req.Account, req.CurrentAge, req.Years, req.Assumptions),
	})
}

func (s *Server) handleTax(ctx *fasthttp.RequestCtx) {
	var req taxRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	status, err := domain.ParseFilingStatus(req.FilingStatus)
	if err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}

	calc := s.Engine.TaxCalc
	writeJSON(ctx, fasthttp.StatusOK, taxResponse{
		TaxYear:       s.Engine.Rules.TaxYear,
		FilingStatus:  status,
		Income:        req.Income,
		Tax:           calc.CalculateFederalTax(req.Income, status),
		MarginalRate:  calc.MarginalRate(req.Income, status),
		EffectiveRate: calc.EffectiveRate(req.Income, status),
	})
}

func (s *Server) handleLimits(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	age, err := intArg(args, "age", 0)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	coverage := domain.HSACoverage(args.Peek("coverage")).Normalize()

	types := domain.AccountTypes
	if raw := args.Peek("type"); len(raw) > 0 {
		t, err := domain.ParseAccountType(string(raw))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		types = []domain.AccountType{t}
	}

	resp := limitsResponse{TaxYear: s.Engine.Rules.TaxYear, Age: age, Limits: make([]limitEntry, 0, len(types))}
	for _, t := range types {
		resp.Limits = append(resp.Limits, limitEntry{
			Type:        t,
			Label:       t.Label(),
			Limit:       s.Engine.Limits.Limit(t, age, coverage),
			Description: s.Engine.Limits.Describe(t, age, coverage),
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleClaimAges(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	earnings, err := decimal.NewFromString(string(args.Peek("monthly_earnings")))
	if err != nil || earnings.IsNegative() {
		writeError(ctx, fasthttp.StatusBadRequest, "monthly_earnings must be a non-negative number")
		return
	}
	ss := s.Engine.Rules.SocialSecurity
	deathAge, err := intArg(args, "death_age", config.DefaultDeathAge)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	early, err := intArg(args, "early", ss.EarlyFloorAge)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	late, err := intArg(args, "late", 70)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, claimAgesResponse{
		MonthlyEarnings: earnings,
		DeathAge:        deathAge,
		Options:         s.Engine.CompareClaimAges(earnings, deathAge),
		BreakEvenAge:    s.Engine.SocialSecurity.ClaimBreakEvenAge(early, late, earnings, deathAge),
		EarlyClaimAge:   early,
		LateClaimAge:    late,
	})
}

func intArg(args *fasthttp.Args, name string, def int) (int, error) {
	raw := args.Peek(name)
	if len(raw) == 0 {
		return def, nil
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
