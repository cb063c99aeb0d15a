package api

import (
	"strconv"
	"strings"

	models "RiskPulse/internal/domain/models"
	domrepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/risk"
	"RiskPulse/internal/usecase"
	xhttp "RiskPulse/pkg/http"
	xlogger "RiskPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssessmentEchoHandler exposes the collector's results over HTTP.
type AssessmentEchoHandler struct {
	logger    *xlogger.Logger
	collector *usecase.Collector
	store     domrepo.AssessmentStore // nil unless the clickhouse backend is active
}

func NewAssessmentEchoHandler(logger *xlogger.Logger, collector *usecase.Collector, store domrepo.AssessmentStore) *AssessmentEchoHandler {
	return &AssessmentEchoHandler{logger: logger, collector: collector, store: store}
}

func (h *AssessmentEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/assessment", h.Assessment)
	g.GET("/assessments", h.Assessments)
	g.GET("/score", h.Score)
}

// Assessment returns the newest cycle's full result.
func (h *AssessmentEchoHandler) Assessment(c echo.Context) error {
	last := h.collector.Last()
	if last == nil {
		return xhttp.NotFoundResponse(c, "no collection cycle has completed yet")
	}
	return xhttp.SuccessResponse(c, last)
}

// Assessments returns recent assessment history, newest first. Reads from
// ClickHouse when that backend is active, the in-memory ring otherwise.
func (h *AssessmentEchoHandler) Assessments(c echo.Context) error {
	req := &models.AssessmentsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.store != nil {
		res, err := h.store.Latest(c.Request().Context(), req.Limit)
		if err != nil {
			h.logger.Error("assessment history query failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.ListResponse(c, res, int64(len(res)))
	}

	res := h.collector.History(req.Limit)
	return xhttp.ListResponse(c, res, int64(len(res)))
}

// Score runs the composite scorer over caller-supplied inputs without
// touching any upstream source.
func (h *AssessmentEchoHandler) Score(c echo.Context) error {
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	changes, err := parseChanges(req.Changes)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	w := models.WeatherSignal{
		Temperature: req.Temperature,
		Condition:   req.Condition,
		WindSpeed:   req.WindSpeed,
		Visibility:  req.Visibility,
		Humidity:    req.Humidity,
		Pressure:    req.Pressure,
	}
	a := risk.Composite(&w, changes, req.Incidents, risk.ParseProfile(req.Profile))
	return xhttp.SuccessResponse(c, a)
}

func parseChanges(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
