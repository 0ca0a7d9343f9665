package cryptopay

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"give-hub/common/config"
	"give-hub/common/requester"
	"give-hub/payment/types"
)

// Gateway talks to the cryptocurrency processor: a single forwarded
// initiation that yields a hosted payment page. The processor keeps all
// later state itself, so there is no capture or state query here.
type Gateway struct {
	cfg       *config.CryptoConfig
	requester *requester.HTTPRequester
}

func NewGateway(cfg *config.CryptoConfig, timeout time.Duration) *Gateway {
	return &Gateway{
		cfg:       cfg,
		requester: requester.NewHTTPRequester(timeout, requestErrorHandle),
	}
}

func (g *Gateway) Name() string {
	return "crypto"
}

func requestErrorHandle(resp *http.Response) string {
	cryptoError := struct {
		Message string `json:"message"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&cryptoError); err != nil {
		return ""
	}
	return cryptoError.Message
}

type chargeResponse struct {
	ID        string `json:"id"`
	HostedURL string `json:"hosted_url"`
}

func (g *Gateway) Initiate(ctx context.Context, data json.RawMessage) (*types.InitiateResult, *types.PaymentError) {
	if !json.Valid(data) {
		return nil, types.ClientError("Malformed request body.", "crypto payload is not valid JSON")
	}

	req, err := g.requester.NewRequest(ctx, http.MethodPost, g.chargesURL(),
		g.requester.WithBody(data), g.requester.WithHeader(g.requestHeaders()))
	if err != nil {
		return nil, types.UpstreamError("Crypto payment initiation failed.", "build request: "+err.Error())
	}

	response := &chargeResponse{}
	if payErr := g.requester.SendRequest(req, response, "Crypto payment initiation failed."); payErr != nil {
		return nil, payErr
	}
	if response.HostedURL == "" {
		return nil, types.UpstreamError("Crypto payment initiation failed.", "no hosted payment URL in response")
	}

	return &types.InitiateResult{AuthURL: response.HostedURL}, nil
}

func (g *Gateway) chargesURL() string {
	return strings.TrimSuffix(g.cfg.APIBase, "/") + "/charges"
}

func (g *Gateway) requestHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + g.cfg.APIKey,
	}
}
