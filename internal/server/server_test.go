package server

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type recordingLogger struct {
	calculation.NopLogger
	infos  []string
	errors []string
}

func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, format)
}

func (r *recordingLogger) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func newTestServer() (*Server, *recordingLogger) {
	logger := &recordingLogger{}
	cfg := config.ServerConfig{Addr: ":0", MaxBodyBytes: 4096}
	return New(calculation.NewCalculationEngine(), cfg, logger), logger
}

func do(t *testing.T, s *Server, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler()(&ctx)
	return &ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v), string(ctx.Response.Body()))
}

const socialSecurityPlan = `{
	"profile": {"current_age": 60, "retirement_age": 65, "death_age": 80, "current_income": 75000},
	"assumptions": {"return_rate": 0.07},
	"accounts": [{"name": "SSA", "type": "social_security"}]
}`

func TestHealthz(t *testing.T) {
	s, logger := newTestServer()
	ctx := do(t, s, fasthttp.MethodGet, "/healthz", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
	assert.NotEmpty(t, string(ctx.Response.Header.Peek(RequestIDHeader)))
	assert.Len(t, logger.infos, 1)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s, _ := newTestServer()
	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(RequestIDHeader, "abc-123")
	req.SetRequestURI("/healthz")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler()(&ctx)

	assert.Equal(t, "abc-123", string(ctx.Response.Header.Peek(RequestIDHeader)))
}

func TestRouting(t *testing.T) {
	s, _ := newTestServer()

	ctx := do(t, s, fasthttp.MethodGet, "/v2/nothing", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodGet, "/v1/summary", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.Equal(t, fasthttp.MethodPost, string(ctx.Response.Header.Peek(fasthttp.HeaderAllow)))

	var errResp ErrorResponse
	decode(t, ctx, &errResp)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, errResp.Status)
}

func TestBodyTooLarge(t *testing.T) {
	s, _ := newTestServer()
	ctx := do(t, s, fasthttp.MethodPost, "/v1/summary", strings.Repeat(" ", 5000))
	assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer()
	ctx := do(t, s, fasthttp.MethodPost, "/v1/summary", socialSecurityPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		Summary struct {
			TotalBalance        string `json:"total_balance"`
			AnnualIncomeStreams string `json:"annual_income_streams"`
			MonthlyIncome       string `json:"monthly_income"`
		} `json:"summary"`
		Readiness struct {
			Status string `json:"status"`
		} `json:"readiness"`
		Warnings []string `json:"warnings"`
	}
	decode(t, ctx, &resp)

	assert.Equal(t, "0", resp.Summary.TotalBalance)
	assert.Equal(t, "39600", resp.Summary.AnnualIncomeStreams)
	assert.Equal(t, "3300", resp.Summary.MonthlyIncome)
	assert.Equal(t, "fair", resp.Readiness.Status)
	assert.Empty(t, resp.Warnings)
}

func TestSummaryErrors(t *testing.T) {
	s, _ := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/v1/summary", `{"profile": `)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodPost, "/v1/summary", `{"profile": {"current_age": 70, "retirement_age": 65}}`)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	var errResp ErrorResponse
	decode(t, ctx, &errResp)
	assert.Contains(t, errResp.Message, "invalid plan")
}

func TestSummaryReportsCoercionWarnings(t *testing.T) {
	s, _ := newTestServer()
	body := `{"profile": {"current_income": "plenty"}, "accounts": []}`
	ctx := do(t, s, fasthttp.MethodPost, "/v1/summary", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp struct {
		Warnings []string `json:"warnings"`
	}
	decode(t, ctx, &resp)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "profile.current_income")
}

func TestTimeline(t *testing.T) {
	s, _ := newTestServer()
	body := `{
		"profile": {"current_age": 60, "retirement_age": 62, "death_age": 64},
		"assumptions": {"return_rate": 0},
		"accounts": [{"type": "roth_ira", "current_balance": 1000}]
	}`
	ctx := do(t, s, fasthttp.MethodPost, "/v1/timeline", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		Timeline struct {
			Points []struct {
				Age       int  `json:"age"`
				IsRetired bool `json:"is_retired"`
			} `json:"points"`
			Final string `json:"final"`
		} `json:"timeline"`
	}
	decode(t, ctx, &resp)
	require.Len(t, resp.Timeline.Points, 5)
	assert.False(t, resp.Timeline.Points[1].IsRetired)
	assert.True(t, resp.Timeline.Points[2].IsRetired)
	assert.Equal(t, "1000", resp.Timeline.Final)
}

func TestReport(t *testing.T) {
	s, _ := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/v1/report?format=csv", socialSecurityPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/csv; charset=utf-8", string(ctx.Response.Header.ContentType()))
	assert.True(t, strings.HasPrefix(string(ctx.Response.Body()), "Account,Type,"))

	ctx = do(t, s, fasthttp.MethodPost, "/v1/report?format=html-report", socialSecurityPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/html; charset=utf-8", string(ctx.Response.Header.ContentType()))

	ctx = do(t, s, fasthttp.MethodPost, "/v1/report?format=pdf", socialSecurityPlan)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestProjection(t *testing.T) {
	s, _ := newTestServer()
	body := `{
		"account": {"type": "Traditional_401k", "current_balance": "100000", "annual_contribution": 50000},
		"current_age": 49,
		"years": 1,
		"assumptions": {"return_rate": "0"}
	}`
	ctx := do(t, s, fasthttp.MethodPost, "/v1/projection", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		Projections []struct {
			Age          int    `json:"age"`
			Contribution string `json:"contribution"`
			Balance      string `json:"balance"`
		} `json:"projections"`
	}
	decode(t, ctx, &resp)
	require.Len(t, resp.Projections, 2)
	assert.Equal(t, "23000", resp.Projections[0].Contribution)
	assert.Equal(t, "30500", resp.Projections[1].Contribution)
	assert.Equal(t, "153500", resp.Projections[1].Balance)
}

func TestProjectionErrors(t *testing.T) {
	s, _ := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/v1/projection", `{"account": {"type": "annuity"}, "years": 3}`)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodPost, "/v1/projection", `{"account": {"type": "roth_ira"}, "years": -1}`)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodPost, "/v1/projection", `not json`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestTax(t *testing.T) {
	s, _ := newTestServer()
	ctx := do(t, s, fasthttp.MethodPost, "/v1/tax", `{"income": 100525, "filing_status": "single"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		TaxYear      int    `json:"tax_year"`
		FilingStatus string `json:"filing_status"`
		Tax          string `json:"tax"`
		MarginalRate string `json:"marginal_rate"`
	}
	decode(t, ctx, &resp)
	assert.Equal(t, 2024, resp.TaxYear)
	assert.Equal(t, "single", resp.FilingStatus)
	assert.Equal(t, "17168.5", resp.Tax)
	assert.Equal(t, "0.22", resp.MarginalRate)

	ctx = do(t, s, fasthttp.MethodPost, "/v1/tax", `{"income": 1000, "filing_status": "head_of_household"}`)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
}

func TestLimits(t *testing.T) {
	s, _ := newTestServer()

	ctx := do(t, s, fasthttp.MethodGet, "/v1/limits?age=50&type=traditional_401k", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		Age    int `json:"age"`
		Limits []struct {
			Type        string `json:"type"`
			Limit       string `json:"limit"`
			Description string `json:"description"`
		} `json:"limits"`
	}
	decode(t, ctx, &resp)
	assert.Equal(t, 50, resp.Age)
	require.Len(t, resp.Limits, 1)
	assert.Equal(t, "30500", resp.Limits[0].Limit)
	assert.Equal(t, "(Limit: $30,500)", resp.Limits[0].Description)

	ctx = do(t, s, fasthttp.MethodGet, "/v1/limits?age=40", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	decode(t, ctx, &resp)
	assert.Len(t, resp.Limits, 8)

	ctx = do(t, s, fasthttp.MethodGet, "/v1/limits?age=forty", "")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do(t, s, fasthttp.MethodGet, "/v1/limits?type=annuity", "")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestClaimAges(t *testing.T) {
	s, _ := newTestServer()
	ctx := do(t, s, fasthttp.MethodGet, "/v1/claim-ages?monthly_earnings=3000&death_age=95&late=67", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		Options []struct {
			ClaimAge int `json:"claim_age"`
		} `json:"options"`
		BreakEvenAge  int `json:"break_even_age"`
		EarlyClaimAge int `json:"early_claim_age"`
		LateClaimAge  int `json:"late_claim_age"`
	}
	decode(t, ctx, &resp)
	assert.Len(t, resp.Options, 9)
	assert.Equal(t, 62, resp.EarlyClaimAge)
	assert.Equal(t, 67, resp.LateClaimAge)
	assert.Equal(t, 81, resp.BreakEvenAge)

	ctx = do(t, s, fasthttp.MethodGet, "/v1/claim-ages", "")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}
