package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"give-hub/common/config"
	"give-hub/common/requester"
	"give-hub/common/storage"
	"give-hub/payment/types"
)

// Gateway talks to the wallet processor. Initiation forwards the caller's
// payload verbatim and files the provider's opaque payment id under the
// caller's donation reference; the state query resolves the reference back
// through the store.
type Gateway struct {
	cfg       *config.WalletConfig
	store     storage.ReferenceStore
	requester *requester.HTTPRequester
}

func NewGateway(cfg *config.WalletConfig, store storage.ReferenceStore, timeout time.Duration) *Gateway {
	return &Gateway{
		cfg:       cfg,
		store:     store,
		requester: requester.NewHTTPRequester(timeout, requestErrorHandle),
	}
}

func (g *Gateway) Name() string {
	return "wallet"
}

func requestErrorHandle(resp *http.Response) string {
	walletError := struct {
		Error string `json:"error"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&walletError); err != nil {
		return ""
	}
	return walletError.Error
}

// initiatePayload decodes just enough of the caller's data to extract the
// donation reference; the raw payload is what goes over the wire.
type initiatePayload struct {
	Metadata struct {
		DonationReference string `json:"donation_reference"`
	} `json:"metadata"`
}

type paymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
	Metadata    struct {
		DonationReference string `json:"donation_reference"`
	} `json:"metadata"`
}

func (g *Gateway) Initiate(ctx context.Context, data json.RawMessage) (*types.InitiateResult, *types.PaymentError) {
	payload := &initiatePayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, types.ClientError("Malformed request body.", "wallet payload: "+err.Error())
	}
	reference := payload.Metadata.DonationReference
	if reference == "" {
		return nil, types.ClientError("Malformed request body.", "missing metadata.donation_reference")
	}

	req, err := g.requester.NewRequest(ctx, http.MethodPost, g.paymentsURL(""),
		g.requester.WithBody(data), g.requester.WithHeader(g.requestHeaders()))
	if err != nil {
		return nil, types.UpstreamError("Wallet payment initiation failed.", "build request: "+err.Error())
	}

	response := &paymentResponse{}
	if payErr := g.requester.SendRequest(req, response, "Wallet payment initiation failed."); payErr != nil {
		return nil, payErr
	}
	if response.PaymentID == "" || response.CheckoutURL == "" {
		return nil, types.UpstreamError("Wallet payment initiation failed.", "incomplete response from wallet processor")
	}

	// The mapping must be durable before the caller learns the redirect URL:
	// a reference that cannot be resolved later would make the payment
	// untrackable while looking successful.
	if err := g.store.Put(ctx, reference, response.PaymentID); err != nil {
		return nil, types.PersistenceError(
			"Payment was created but could not be registered for tracking.",
			"store put: "+err.Error())
	}

	return &types.InitiateResult{AuthURL: response.CheckoutURL}, nil
}

// QueryState resolves a donation reference to the wallet payment id and
// fetches its current status. A reference this service never stored is an
// internal consistency fault, not caller error.
func (g *Gateway) QueryState(ctx context.Context, reference string) (*types.StateResult, *types.PaymentError) {
	paymentID, err := g.store.Get(ctx, reference)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.PersistenceError("Unknown donation reference.", "no stored id for "+reference)
		}
		return nil, types.PersistenceError("Unknown donation reference.", "store get: "+err.Error())
	}

	req, reqErr := g.requester.NewRequest(ctx, http.MethodGet, g.paymentsURL(paymentID),
		g.requester.WithHeader(g.requestHeaders()))
	if reqErr != nil {
		return nil, types.UpstreamError("Wallet state query failed.", "build request: "+reqErr.Error())
	}

	response := &paymentResponse{}
	if payErr := g.requester.SendRequest(req, response, "Wallet state query failed."); payErr != nil {
		return nil, payErr
	}

	// Echo the reference the provider has on record rather than the input,
	// as a cross-check of the stored mapping.
	return &types.StateResult{
		Status:    response.Status,
		Reference: response.Metadata.DonationReference,
	}, nil
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
		"Authorization": "Bearer " + g.cfg.APIKey,
	}
}
