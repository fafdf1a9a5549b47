package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/checkout"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

// CheckoutRequest represents the checkout form payload
type CheckoutRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone_number"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	PaymentMethod   string `json:"payment_method"`
	CardNumber      string `json:"card_number,omitempty"`
	CardHolderName  string `json:"card_holder_name,omitempty"`
	Expiry          string `json:"expiry,omitempty"`
	CVV             string `json:"cvv,omitempty"`
	SavePaymentInfo bool   `json:"save_payment_info,omitempty"`
}

func (r CheckoutRequest) toForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		PostalCode:      r.PostalCode,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		CardNumber:      r.CardNumber,
		CardHolderName:  r.CardHolderName,
		Expiry:          r.Expiry,
		CVV:             r.CVV,
		SavePaymentInfo: r.SavePaymentInfo,
	}
}

// CheckoutResponse represents a successful checkout confirmation
type CheckoutResponse struct {
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
	DeliveryFee float64 `json:"delivery_fee"`
	Status      string  `json:"status"`
}

// CheckoutStateResponse reports the current checkout phase
type CheckoutStateResponse struct {
	State       domain.CheckoutState `json:"state"`
	FieldErrors map[string]string    `json:"field_errors,omitempty"`
	OrderNumber string               `json:"order_number,omitempty"`
}

// HandleCheckoutState handles GET /api/checkout
func HandleCheckoutState(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := CheckoutStateResponse{
			State:       orch.State(),
			FieldErrors: orch.FieldErrors(),
		}
		if conf := orch.Confirmation(); conf != nil {
			resp.OrderNumber = conf.OrderNumber
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleCheckoutSubmit handles POST /api/checkout
func HandleCheckoutSubmit(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orch.SetForm(req.toForm())

		conf, err := orch.Submit(c.Request.Context())
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":  "validation failed",
					"fields": e.Fields,
				})
			case *errors.ErrConflict:
				c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
			case *errors.ErrSubmissionFailed:
				logger.Error("Checkout submission failed upstream", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed"})
			default:
				logger.Error("Checkout submission failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed"})
			}
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			OrderNumber: conf.OrderNumber,
			TotalAmount: conf.Order.TotalAmount,
			DeliveryFee: conf.Order.DeliveryFee,
			Status:      string(conf.Order.Status),
		})
	}
}

// HandleCheckoutAbandon handles POST /api/checkout/abandon
func HandleCheckoutAbandon(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orch.Abandon()
		c.Status(http.StatusNoContent)
	}
}
