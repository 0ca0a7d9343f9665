package types

import "encoding/json"

// Provider identifiers accepted in the payment_provider field.
const (
	ProviderCardToken      = "card-token"
	ProviderCheckoutPortal = "checkout-portal"
	ProviderWallet         = "wallet"
	ProviderCrypto         = "crypto"
)

// DonationRequest is the unified transport body of an initiation. Data is
// opaque here; only the gateway selected by PaymentProvider interprets it.
type DonationRequest struct {
	PaymentProvider string          `json:"payment_provider"`
	Data            json.RawMessage `json:"data"`
}

// InitiateResult is the normalized success outcome of an initiation.
// Exactly one of AuthURL and Payload is set: redirect-style gateways return
// the URL the donor is sent to, the checkout portal returns the full signed
// payload for client-side submission.
type InitiateResult struct {
	AuthURL string
	Payload any
}

// CaptureResult reports a fully settled capture.
type CaptureResult struct {
	Message string
}

// StateResult is the outcome of a wallet state query. Reference echoes the
// donation reference the provider has on record, not the caller-supplied
// one, so a mismatch is visible to the caller.
type StateResult struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}
