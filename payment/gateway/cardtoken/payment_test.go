package cardtoken

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"give-hub/common/config"
	"give-hub/payment/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProcessor fakes the card-token processor and counts the calls it
// receives, so tests can assert which calls were (not) issued.
type fakeProcessor struct {
	initiations   int
	statusQueries int
	captures      int

	initiateStatus string
	paymentStatus  string
	captureStatus  string

	lastInitiateBody map[string]any
}

func (f *fakeProcessor) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/payments":
			f.initiations++
			_ = json.NewDecoder(r.Body).Decode(&f.lastInitiateBody)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "pay_123",
				"status": f.initiateStatus,
				"redirect": map[string]any{
					"auth_url": "https://processor.example/auth/pay_123",
				},
			})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/capture"):
			f.captures++
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "pay_123",
				"status": f.captureStatus,
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/payments/"):
			f.statusQueries++
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "pay_123",
				"status": f.paymentStatus,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestGateway(t *testing.T, fake *fakeProcessor) *Gateway {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	return NewGateway(&config.CardTokenConfig{
		APIBase: server.URL,
		APIKey:  "user:pass",
	}, "https://donate.example/api/donation/", time.Second)
}

const initiateData = `{
	"amount": "12.50",
	"currency": "EUR",
	"successUrl": "https://donate.example/thanks",
	"failureUrl": "https://donate.example/sorry"
}`

func TestInitiateSuccess(t *testing.T) {
	fake := &fakeProcessor{initiateStatus: "INITIATED"}
	gateway := newTestGateway(t, fake)

	result, payErr := gateway.Initiate(context.Background(), json.RawMessage(initiateData))
	require.Nil(t, payErr)
	assert.Equal(t, "https://processor.example/auth/pay_123", result.AuthURL)
	assert.Equal(t, 1, fake.initiations)

	// The callback URL keeps the processor's substitution placeholder.
	assert.Equal(t, "https://donate.example/api/donation/capture/{payment_id}",
		fake.lastInitiateBody["notification_url"])

	customerField, ok := fake.lastInitiateBody["customer"].(map[string]any)
	require.True(t, ok)
	customerID, _ := customerField["id"].(string)
	assert.Len(t, customerID, 50) // 25 random bytes, hex-encoded
}

func TestInitiateFreshCustomerIds(t *testing.T) {
	fake := &fakeProcessor{initiateStatus: "INITIATED"}
	gateway := newTestGateway(t, fake)

	_, payErr := gateway.Initiate(context.Background(), json.RawMessage(initiateData))
	require.Nil(t, payErr)
	first := fake.lastInitiateBody["customer"].(map[string]any)["id"]

	_, payErr = gateway.Initiate(context.Background(), json.RawMessage(initiateData))
	require.Nil(t, payErr)
	second := fake.lastInitiateBody["customer"].(map[string]any)["id"]

	assert.NotEqual(t, first, second)
}

func TestInitiateBadStatus(t *testing.T) {
	fake := &fakeProcessor{initiateStatus: "FAILED"}
	gateway := newTestGateway(t, fake)

	_, payErr := gateway.Initiate(context.Background(), json.RawMessage(initiateData))
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindUpstream, payErr.Kind)
	assert.Equal(t, http.StatusBadGateway, payErr.StatusCode)
}

func TestInitiateMissingFieldSkipsProcessor(t *testing.T) {
	fake := &fakeProcessor{initiateStatus: "INITIATED"}
	gateway := newTestGateway(t, fake)

	_, payErr := gateway.Initiate(context.Background(), json.RawMessage(`{"amount": "10"}`))
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindClientInput, payErr.Kind)
	assert.Equal(t, 0, fake.initiations)
}

func TestInitiateRejectsNonPositiveAmount(t *testing.T) {
	fake := &fakeProcessor{initiateStatus: "INITIATED"}
	gateway := newTestGateway(t, fake)

	data := strings.Replace(initiateData, `"12.50"`, `"-1"`, 1)
	_, payErr := gateway.Initiate(context.Background(), json.RawMessage(data))
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindClientInput, payErr.Kind)
	assert.Equal(t, 0, fake.initiations)
}

func TestCaptureAuthorized(t *testing.T) {
	fake := &fakeProcessor{paymentStatus: "AUTHORIZED", captureStatus: "SUCCESS"}
	gateway := newTestGateway(t, fake)

	result, payErr := gateway.Capture(context.Background(), "pay_123")
	require.Nil(t, payErr)
	assert.Equal(t, "We have captured the payment.", result.Message)
	assert.Equal(t, 1, fake.statusQueries)
	assert.Equal(t, 1, fake.captures)
}

// A payment that is not yet authorized must never reach the capture call.
func TestCaptureGating(t *testing.T) {
	fake := &fakeProcessor{paymentStatus: "INITIATED"}
	gateway := newTestGateway(t, fake)

	_, payErr := gateway.Capture(context.Background(), "pay_123")
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindUpstream, payErr.Kind)
	assert.Equal(t, http.StatusConflict, payErr.StatusCode)
	assert.Equal(t, 1, fake.statusQueries)
	assert.Equal(t, 0, fake.captures)
}

func TestCaptureBadCaptureStatus(t *testing.T) {
	fake := &fakeProcessor{paymentStatus: "AUTHORIZED", captureStatus: "DECLINED"}
	gateway := newTestGateway(t, fake)

	_, payErr := gateway.Capture(context.Background(), "pay_123")
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindUpstream, payErr.Kind)
	assert.Equal(t, http.StatusBadGateway, payErr.StatusCode)
	assert.Equal(t, 1, fake.captures)
}

func TestInitiateProcessorDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	gateway := NewGateway(&config.CardTokenConfig{APIBase: server.URL, APIKey: "k"},
		"https://donate.example/api/donation/", time.Second)

	_, payErr := gateway.Initiate(context.Background(), json.RawMessage(initiateData))
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindUpstream, payErr.Kind)
	assert.Equal(t, http.StatusBadGateway, payErr.StatusCode)
}
