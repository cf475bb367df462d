package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/guttosm/stabletide/internal/analysis"
	"github.com/guttosm/stabletide/internal/domain/dto"
	"github.com/guttosm/stabletide/internal/middleware"
	"github.com/guttosm/stabletide/internal/service"
)

// CacheStatusHeader tells the client whether a successful query was also
// persisted ("stored") or only fetched ("not-stored").
const CacheStatusHeader = "X-Cache-Status"

// ReportLoader produces the current report view; *report.Loader implements it.
type ReportLoader interface {
	Load(ctx context.Context) dto.ReportView
}

// Handler serves query submission and the report view.
type Handler struct {
	queries service.QueryService
	reports ReportLoader
}

func NewHandler(queries service.QueryService, reports ReportLoader) *Handler {
	return &Handler{queries: queries, reports: reports}
}

// SubmitQuery godoc
// @Summary      Submit a liquidity query
// @Description  Requests an analysis for the given window, stores it as the latest result and redirects to the report view.
// @Tags         query
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        start                 formData  string  true  "Start date"           example(2024-01-01)
// @Param        end                   formData  string  true  "End date"             example(2024-01-31)
// @Param        asset                 formData  string  true  "Asset type"           example(crypto)
// @Param        time_intervals        formData  string  true  "Number of intervals"  example(7)
// @Param        time_interval_length  formData  string  true  "Interval length"      example(86400)
// @Success      303  {string}  string  "Redirect to /"
// @Failure      400  {object}  dto.ErrorResponse  "Missing fields"
// @Failure      429  {object}  dto.ErrorResponse  "Rate limited"
// @Failure      500  {object}  dto.ErrorResponse  "Internal error"
// @Failure      502  {object}  dto.ErrorResponse  "Analysis service error"
// @Failure      503  {object}  dto.ErrorResponse  "Analysis service unreachable"
// @Failure      504  {object}  dto.ErrorResponse  "Analysis service timed out"
// @Router       /query [post]
func (h *Handler) SubmitQuery(c *gin.Context) {
	var form dto.QueryForm
	if err := c.ShouldBind(&form); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, dto.FormFieldName(fe.StructField()))
			}
			h.fail(c, &analysis.ValidationError{Fields: fields})
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}

	_, outcome, err := h.queries.Submit(c.Request.Context(), form.Params())
	if err != nil {
		h.fail(c, err)
		return
	}

	if outcome.OK() {
		c.Header(CacheStatusHeader, "stored")
	} else {
		c.Header(CacheStatusHeader, "not-stored")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GetReport godoc
// @Summary      Current report view
// @Description  Returns the chart-ready view of the latest cached result. Every field is null when no usable result exists.
// @Tags         report
// @Produce      json
// @Success      200  {object}  dto.ReportView
// @Router       / [get]
// @Router       /api/v1/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Load(c.Request.Context()))
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, resp := errorResponse(err)
	middleware.AbortWithResponse(c, status, resp)
	_ = c.Error(err)
}

// errorResponse maps query errors to their HTTP status and body.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		ve *analysis.ValidationError
		ue *analysis.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		resp := dto.NewErrorResponse("all fields are required", err)
		resp.Fields = ve.Fields
		return http.StatusBadRequest, resp
	case errors.As(err, &ue):
		resp := dto.NewErrorResponse("analysis service returned an error", err)
		resp.UpstreamStatus = ue.Status
		return http.StatusBadGateway, resp
	case errors.Is(err, analysis.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, dto.NewErrorResponse("analysis service timed out", err)
	case errors.Is(err, analysis.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, dto.NewErrorResponse("analysis service unreachable", err)
	case errors.Is(err, analysis.ErrMalformedPayload):
		return http.StatusBadGateway, dto.NewErrorResponse("analysis service returned a malformed payload", err)
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, dto.NewErrorResponse("request cancelled", err)
	default:
		return http.StatusInternalServerError, dto.NewErrorResponse("query failed", err)
	}
}
