package server

import (
	"net/http"

	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/report"
	"fjacquet/taxcalc/internal/store"
	"fjacquet/taxcalc/internal/taxerror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CalculateRequest is the body of POST /api/v1/calculate. Amount may be a JSON number or
// a decimal string; IsAnnual defaults to true.
type CalculateRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	IsAnnual *bool            `json:"is_annual"`
}

// ErrorResponse is returned with every 4xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /health.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "taxcalc",
		"rule_set": s.engine.Rules().Name,
	})
}

// Brackets handles GET /api/v1/brackets.
func (s *Server) Brackets(c *gin.Context) {
	c.JSON(http.StatusOK, store.FromRuleSet(s.engine.Rules()))
}

// Calculate handles POST /api/v1/calculate.
func (s *Server) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.metrics.Observe(input, models.CalculationResult{}, err)
		s.badRequest(c, err.Error())
		return
	}

	result, err := s.engine.Calculate(input)
	s.metrics.Observe(input, result, err)
	if err != nil {
		s.badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, report.NewResultView(result, s.options.Currency))
}

func (r CalculateRequest) toInput() (models.CalculationInput, error) {
	isAnnual := true
	if r.IsAnnual != nil {
		isAnnual = *r.IsAnnual
	}
	period := models.PeriodFromAnnualFlag(isAnnual)

	category, err := models.ParseTaxCategory(r.Category)
	if err != nil {
		return models.CalculationInput{Period: period}, err
	}
	if r.Amount == nil {
		return models.CalculationInput{Category: category, Period: period},
			&taxerror.InvalidAmountError{Reason: "amount is required"}
	}
	if err := models.ValidateAmount(*r.Amount); err != nil {
		return models.CalculationInput{Category: category, Period: period}, err
	}
	return models.NewCalculationInput(category, *r.Amount, period), nil
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	s.logger.Warn("Rejected calculation request",
		logging.F(logging.FieldCorrelationID, GetCorrelationID(c)),
		logging.F(logging.FieldError, msg))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
