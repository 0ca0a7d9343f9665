package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"give-hub/common/config"
	"give-hub/common/metrics"
	"give-hub/common/storage"
	"give-hub/payment/gateway/cardtoken"
	"give-hub/payment/gateway/checkoutportal"
	"give-hub/payment/gateway/cryptopay"
	"give-hub/payment/gateway/wallet"
	"give-hub/payment/types"

	"github.com/samber/lo"
)

// PaymentProcessor is the capability every gateway has: turning the opaque
// data payload of a donation into a normalized initiation outcome.
type PaymentProcessor interface {
	Name() string
	Initiate(ctx context.Context, data json.RawMessage) (*types.InitiateResult, *types.PaymentError)
}

// CaptureProcessor is the second-phase capability of gateways with an
// authorize-then-capture lifecycle.
type CaptureProcessor interface {
	Capture(ctx context.Context, paymentID string) (*types.CaptureResult, *types.PaymentError)
}

// StateProcessor is the capability of gateways whose payment state is
// queried later through a stored donation reference.
type StateProcessor interface {
	QueryState(ctx context.Context, reference string) (*types.StateResult, *types.PaymentError)
}

// Dispatcher routes donation calls to the gateway selected by the request's
// provider tag. It holds no credentials itself and performs no I/O; all side
// effects live in the delegated gateway.
type Dispatcher struct {
	gateways map[string]PaymentProcessor
}

func NewDispatcher(cfg *config.PaymentConfig, store storage.ReferenceStore) *Dispatcher {
	return &Dispatcher{
		gateways: map[string]PaymentProcessor{
			types.ProviderCardToken:      cardtoken.NewGateway(&cfg.CardToken, cfg.NotifyBaseURL, cfg.RequestTimeout),
			types.ProviderCheckoutPortal: checkoutportal.NewGateway(&cfg.CheckoutPortal),
			types.ProviderWallet:         wallet.NewGateway(&cfg.Wallet, store, cfg.RequestTimeout),
			types.ProviderCrypto:         cryptopay.NewGateway(&cfg.Crypto, cfg.RequestTimeout),
		},
	}
}

// SupportedProviders lists the registered provider tags, sorted for stable
// logging.
func (d *Dispatcher) SupportedProviders() []string {
	providers := lo.Keys(d.gateways)
	sort.Strings(providers)
	return providers
}

// Initiate parses the transport body and delegates to exactly one gateway.
// Nothing is sent upstream unless the body parses and names a known
// provider with a data payload.
func (d *Dispatcher) Initiate(ctx context.Context, body []byte) (*types.InitiateResult, *types.PaymentError) {
	request := &types.DonationRequest{}
	if err := json.Unmarshal(body, request); err != nil {
		return nil, types.ClientError("Malformed request body.", "transport body: "+err.Error())
	}

	gateway, ok := d.gateways[request.PaymentProvider]
	if !ok {
		// The tag is caller input; it must not become a label value.
		metrics.RecordInitiation("unknown", "unsupported")
		return nil, types.ClientError("Unsupported payment provider.",
			fmt.Sprintf("provider %q not in %v", request.PaymentProvider, d.SupportedProviders()))
	}

	if len(request.Data) == 0 {
		metrics.RecordInitiation(gateway.Name(), "client_input")
		return nil, types.ClientError("Malformed request body.", "missing data field")
	}

	result, payErr := gateway.Initiate(ctx, request.Data)
	if payErr != nil {
		metrics.RecordInitiation(gateway.Name(), string(payErr.Kind))
		return nil, payErr
	}

	metrics.RecordInitiation(gateway.Name(), "ok")
	return result, nil
}

// Capture drives the second half of the card-token lifecycle.
func (d *Dispatcher) Capture(ctx context.Context, paymentID string) (*types.CaptureResult, *types.PaymentError) {
	processor, ok := d.gateways[types.ProviderCardToken].(CaptureProcessor)
	if !ok {
		return nil, types.ClientError("Unsupported payment provider.", "card-token gateway lacks capture")
	}

	result, payErr := processor.Capture(ctx, paymentID)
	if payErr != nil {
		metrics.RecordCapture(string(payErr.Kind))
		return nil, payErr
	}

	metrics.RecordCapture("ok")
	return result, nil
}

// QueryState resolves the wallet payment behind a donation reference.
func (d *Dispatcher) QueryState(ctx context.Context, reference string) (*types.StateResult, *types.PaymentError) {
	processor, ok := d.gateways[types.ProviderWallet].(StateProcessor)
	if !ok {
		return nil, types.ClientError("Unsupported payment provider.", "wallet gateway lacks state query")
	}

	result, payErr := processor.QueryState(ctx, reference)
	if payErr != nil {
		metrics.RecordStateQuery(string(payErr.Kind))
		return nil, payErr
	}

	metrics.RecordStateQuery("ok")
	return result, nil
}
