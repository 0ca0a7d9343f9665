package cardtoken

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"give-hub/common"
	"give-hub/common/config"
	"give-hub/common/requester"
	"give-hub/common/utils"
	"give-hub/payment/types"

	"github.com/shopspring/decimal"
)

// Processor-side status sentinels driving the INITIATED -> AUTHORIZED ->
// CAPTURED lifecycle.
const (
	statusInitiated  = "INITIATED"
	statusAuthorized = "AUTHORIZED"
	statusSuccess    = "SUCCESS"
)

const paymentType = "CARD_TOKEN"

// Gateway talks to the card-token processor: a redirect-style initiation
// followed by a status-gated capture, both authenticated with the basic
// api key.
type Gateway struct {
	cfg           *config.CardTokenConfig
	notifyBaseURL string
	requester     *requester.HTTPRequester
}

func NewGateway(cfg *config.CardTokenConfig, notifyBaseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		cfg:           cfg,
		notifyBaseURL: notifyBaseURL,
		requester:     requester.NewHTTPRequester(timeout, requestErrorHandle),
	}
}

func (g *Gateway) Name() string {
	return "card-token"
}

// requestErrorHandle pulls the processor's error body into the logged
// detail. The processor reports {code, message}.
func requestErrorHandle(resp *http.Response) string {
	processorError := struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&processorError); err != nil {
		return ""
	}
	if processorError.Code == "" && processorError.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", processorError.Code, processorError.Message)
}

type initiatePayload struct {
	Amount     json.Number `json:"amount" validate:"required"`
	Currency   string      `json:"currency" validate:"required"`
	SuccessURL string      `json:"successUrl" validate:"required"`
	FailureURL string      `json:"failureUrl" validate:"required"`
}

type paymentRequest struct {
	Type            string      `json:"type"`
	Amount          json.Number `json:"amount"`
	Currency        string      `json:"currency"`
	Redirect        redirect    `json:"redirect"`
	NotificationURL string      `json:"notification_url"`
	Customer        customer    `json:"customer"`
}

type redirect struct {
	SuccessURL string `json:"success_url"`
	FailureURL string `json:"failure_url"`
}

type customer struct {
	ID string `json:"id"`
}

type paymentResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Redirect struct {
		AuthURL string `json:"auth_url"`
	} `json:"redirect"`
}

func (g *Gateway) Initiate(ctx context.Context, data json.RawMessage) (*types.InitiateResult, *types.PaymentError) {
	payload := &initiatePayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, types.ClientError("Malformed request body.", "card-token payload: "+err.Error())
	}
	if err := common.Validate.Struct(payload); err != nil {
		return nil, types.ClientError("Malformed request body.", common.ValidationDetail(err))
	}
	if amount, err := decimal.NewFromString(payload.Amount.String()); err != nil || !amount.IsPositive() {
		return nil, types.ClientError("Malformed request body.", "amount must be a positive number")
	}

	body := &paymentRequest{
		Type:     paymentType,
		Amount:   payload.Amount,
		Currency: payload.Currency,
		Redirect: redirect{
			SuccessURL: payload.SuccessURL,
			FailureURL: payload.FailureURL,
		},
		// The processor substitutes the payment id into the placeholder when
		// it calls back.
		NotificationURL: g.notifyBaseURL + "capture/{payment_id}",
		Customer: customer{
			// One-shot identity; the processor does not need it to correlate
			// across payments.
			ID: utils.GetRandomHex(25),
		},
	}

	req, err := g.requester.NewRequest(ctx, http.MethodPost, g.paymentsURL(""),
		g.requester.WithBody(body), g.requester.WithHeader(g.requestHeaders()))
	if err != nil {
		return nil, types.UpstreamError("Card payment initiation failed.", "build request: "+err.Error())
	}

	response := &paymentResponse{}
	if payErr := g.requester.SendRequest(req, response, "Card payment initiation failed."); payErr != nil {
		return nil, payErr
	}

	if response.Status != statusInitiated {
		return nil, types.UpstreamError("Card payment initiation failed.", "bad status: "+response.Status)
	}

	return &types.InitiateResult{AuthURL: response.Redirect.AuthURL}, nil
}

// Capture finalizes an authorized payment. The status is fetched first and
// the capture call is only issued for AUTHORIZED payments; anything else is
// reported as a 409-class outcome so the caller knows the payment is not in
// a capturable state rather than getting silence.
func (g *Gateway) Capture(ctx context.Context, paymentID string) (*types.CaptureResult, *types.PaymentError) {
	req, err := g.requester.NewRequest(ctx, http.MethodGet, g.paymentsURL(paymentID),
		g.requester.WithHeader(g.requestHeaders()))
	if err != nil {
		return nil, types.UpstreamError("Card payment capture failed.", "build request: "+err.Error())
	}

	current := &paymentResponse{}
	if payErr := g.requester.SendRequest(req, current, "Card payment capture failed."); payErr != nil {
		return nil, payErr
	}

	if current.Status != statusAuthorized {
		return nil, types.UpstreamErrorWithStatus(http.StatusConflict,
			"Payment is not in a capturable state.", "status: "+current.Status)
	}

	req, err = g.requester.NewRequest(ctx, http.MethodPost, g.paymentsURL(paymentID)+"/capture",
		g.requester.WithHeader(g.requestHeaders()))
	if err != nil {
		return nil, types.UpstreamError("Card payment capture failed.", "build request: "+err.Error())
	}

	captured := &paymentResponse{}
	if payErr := g.requester.SendRequest(req, captured, "Card payment capture failed."); payErr != nil {
		return nil, payErr
	}

	if captured.Status != statusSuccess {
		return nil, types.UpstreamError("Card payment capture failed.", "bad status: "+captured.Status)
	}

	return &types.CaptureResult{Message: "We have captured the payment."}, nil
}

func (g *Gateway) paymentsURL(paymentID string) string {
	url := strings.TrimSuffix(g.cfg.APIBase, "/") + "/payments"
	if paymentID != "" {
		url += "/" + paymentID
	}
	return url
}

func (g *Gateway) requestHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(g.cfg.APIKey)),
	}
}
