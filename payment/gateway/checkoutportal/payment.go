package checkoutportal

import (
	"context"
	"encoding/json"

	"give-hub/common/config"
	"give-hub/common/utils"
	"give-hub/payment/types"

	"github.com/samber/lo"
)

// Gateway builds and signs checkout-portal payloads. It is the only gateway
// with no outbound call: the donor's browser submits the signed payload to
// the portal directly.
type Gateway struct {
	cfg *config.CheckoutPortalConfig
}

func NewGateway(cfg *config.CheckoutPortalConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

func (g *Gateway) Name() string {
	return "checkout-portal"
}

// CheckoutPayload is the caller's payload extended with the computed
// identity, reference and fingerprint fields. It is returned to the caller
// verbatim, so the json tags are the portal's own field names.
type CheckoutPayload struct {
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Language          string `json:"language"`
	OrderDescription  string `json:"orderDescription"`
	SuccessURL        string `json:"successUrl"`
	CustomerStatement string `json:"customerStatement"`
	ShopID            string `json:"shopId"`

	// Computed; callers cannot supply or predict them.
	CustomerID              string `json:"customerId"`
	OrderReference          string `json:"orderReference"`
	DonationReference       string `json:"donationReference"`
	RequestFingerprintOrder string `json:"requestFingerprintOrder"`
	RequestFingerprint      string `json:"requestFingerprint"`
}

func (p *CheckoutPayload) fieldValue(name string) string {
	switch name {
	case "customerId":
		return p.CustomerID
	case "amount":
		return p.Amount
	case "currency":
		return p.Currency
	case "language":
		return p.Language
	case "orderDescription":
		return p.OrderDescription
	case "successUrl":
		return p.SuccessURL
	case "orderReference":
		return p.OrderReference
	case "customerStatement":
		return p.CustomerStatement
	case "shopId":
		return p.ShopID
	case "requestFingerprintOrder":
		return p.RequestFingerprintOrder
	default:
		return ""
	}
}

func (g *Gateway) Initiate(_ context.Context, data json.RawMessage) (*types.InitiateResult, *types.PaymentError) {
	payload := &CheckoutPayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, types.ClientError("Malformed request body.", "checkout payload: "+err.Error())
	}

	payload.CustomerID = g.cfg.CustomerID
	// Fresh randomness per order: the reference doubles as the caller-facing
	// correlation id and as guessing protection for the fingerprint.
	payload.OrderReference = utils.GetRandomHex(12)
	payload.DonationReference = payload.OrderReference
	payload.RequestFingerprintOrder = FingerprintOrderValue()

	// The fingerprint is computed last, once every signed field has its
	// final value.
	values := lo.Map(FingerprintOrder, func(name string, _ int) string {
		return payload.fieldValue(name)
	})
	payload.RequestFingerprint = Fingerprint(g.cfg.Secret, values)

	return &types.InitiateResult{Payload: payload}, nil
}
