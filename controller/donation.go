package controller

import (
	"io"
	"net/http"

	"give-hub/common/logger"
	"give-hub/payment"
	"give-hub/payment/types"

	"github.com/gin-gonic/gin"
)

type DonationController struct {
	dispatcher *payment.Dispatcher
}

func NewDonationController(dispatcher *payment.Dispatcher) *DonationController {
	return &DonationController{dispatcher: dispatcher}
}

// PostDonation is the unified initiation entry point. The body is handed to
// the dispatcher as-is; parse errors are its concern so that every failure
// surfaces in the documented {message} shape.
func (ctl *DonationController) PostDonation(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, types.ClientError("Malformed request body.", "read body: "+err.Error()))
		return
	}

	result, payErr := ctl.dispatcher.Initiate(c.Request.Context(), body)
	if payErr != nil {
		respondError(c, payErr)
		return
	}

	// The checkout portal returns its signed payload for client-side
	// submission; every other gateway returns a redirect target.
	if result.Payload != nil {
		c.JSON(http.StatusOK, result.Payload)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": result.AuthURL})
}

// CaptureDonation finalizes an authorized card-token payment. The route is
// also the notification callback target the processor substitutes the
// payment id into.
func (ctl *DonationController) CaptureDonation(c *gin.Context) {
	paymentID := c.Param("payment_id")
	if paymentID == "" {
		respondError(c, types.ClientError("Missing payment id.", "empty payment_id path parameter"))
		return
	}

	result, payErr := ctl.dispatcher.Capture(c.Request.Context(), paymentID)
	if payErr != nil {
		respondError(c, payErr)
		return
	}
	c.JSON(http.StatusOK, result.Message)
}

// DonationState reports the current wallet payment status behind a donation
// reference.
func (ctl *DonationController) DonationState(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		respondError(c, types.ClientError("Missing donation reference.", "empty reference path parameter"))
		return
	}

	result, payErr := ctl.dispatcher.QueryState(c.Request.Context(), reference)
	if payErr != nil {
		respondError(c, payErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError logs the internal detail and returns only the documented
// message, so upstream internals never leak to callers.
func respondError(c *gin.Context, payErr *types.PaymentError) {
	logger.LogError(c.Request.Context(), payErr.Error())
	c.JSON(payErr.StatusCode, gin.H{"message": payErr.Message})
}
