package v1

import (
	"errors"
	"net/http"

	"trucking-quote-backend/internal/delivery/http/middleware"
	"trucking-quote-backend/internal/delivery/http/response"
	"trucking-quote-backend/internal/domain"
	"trucking-quote-backend/pkg/apperror"
	"trucking-quote-backend/pkg/email"
	"trucking-quote-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgQuoteSent    = "Email sent successfully"
	msgQuoteNotSent = "Failed to send email"
	msgInvalidQuote = "Invalid quote request"
	msgInvalidBody  = "Request body must be a JSON quote request"
)

type QuoteHandler struct {
	quoteUC           domain.QuoteUsecase
	exposeDiagnostics bool
}

// NewQuoteHandler registers the quote routes (public, no auth required).
// legacy may be nil; when set it also serves the original /api/send-email path.
func NewQuoteHandler(public, legacy *gin.RouterGroup, quoteUC domain.QuoteUsecase, exposeDiagnostics bool) {
	handler := &QuoteHandler{
		quoteUC:           quoteUC,
		exposeDiagnostics: exposeDiagnostics,
	}

	public.POST("/quote", handler.SubmitQuote)
	if legacy != nil {
		legacy.POST("/send-email", handler.SubmitQuote)
	}
}

// SubmitQuote godoc
// @Summary      Submit Quote Request
// @Description  Emails a trucking insurance quote request to the brokerage. This is a public endpoint.
// @Tags         quote
// @Accept       json
// @Produce      json
// @Param        quote  body      domain.QuoteRequest  true  "Quote Request"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /quote [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var req domain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(msgInvalidBody))
		return
	}

	err := h.quoteUC.SubmitQuote(c.Request.Context(), &req)
	if err == nil {
		response.Success(c, http.StatusOK, msgQuoteSent, nil)
		return
	}

	var validationErr *domain.ValidationError
	var deliveryErr *domain.DeliveryError
	switch {
	case errors.As(err, &validationErr):
		_ = c.Error(apperror.Validation(msgInvalidQuote, validationErr.Fields))
	case errors.As(err, &deliveryErr):
		_ = c.Error(h.deliveryFailure(c, deliveryErr))
	default:
		_ = c.Error(apperror.Internal(err))
	}
}

// deliveryFailure logs the full transport diagnostics and returns the error
// the caller sees: opaque unless diagnostics are exposed.
func (h *QuoteHandler) deliveryFailure(c *gin.Context, err *domain.DeliveryError) *apperror.AppError {
	errorID := uuid.NewString()
	logger.Log.ErrorContext(c.Request.Context(), "quote email failed",
		"error_id", errorID,
		"request_id", middleware.GetRequestID(c),
		"provider", err.Provider,
		"error", err.Err,
		"delivery_unknown", errors.Is(err, email.ErrDeliveryUnknown),
		"user", err.Credentials.User,
		"pass", err.Credentials.Pass,
	)

	appErr := apperror.New(http.StatusInternalServerError, msgQuoteNotSent, err).WithErrorID(errorID)
	if h.exposeDiagnostics {
		appErr.Message = err.Error()
		appErr.WithDetails(err.Credentials)
	}
	return appErr
}
