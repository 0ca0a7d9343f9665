package checkoutportal

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"give-hub/common/config"
	"give-hub/payment/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *Gateway {
	return NewGateway(&config.CheckoutPortalConfig{
		Secret:     "s3cret",
		CustomerID: "D200001",
	})
}

func initiate(t *testing.T, data string) *CheckoutPayload {
	t.Helper()
	result, payErr := testGateway().Initiate(context.Background(), json.RawMessage(data))
	require.Nil(t, payErr)
	payload, ok := result.Payload.(*CheckoutPayload)
	require.True(t, ok)
	return payload
}

const donationData = `{
	"amount": "1000",
	"currency": "EUR",
	"language": "en",
	"orderDescription": "Donation",
	"successUrl": "https://donate.example/thanks",
	"customerStatement": "Thank you",
	"shopId": "donations"
}`

func TestFingerprintDeterministic(t *testing.T) {
	values := []string{"D200001", "1000", "EUR", "en", "Donation",
		"https://donate.example/thanks", "aabbccddeeff001122334455", "Thank you", "donations",
		FingerprintOrderValue()}

	first := Fingerprint("s3cret", values)
	second := Fingerprint("s3cret", values)
	assert.Equal(t, first, second)
	assert.Len(t, first, 128) // hex of a 512-bit digest
}

func TestFingerprintCommitsToOrder(t *testing.T) {
	values := []string{"D200001", "1000", "EUR", "en", "Donation",
		"https://donate.example/thanks", "aabbccddeeff001122334455", "Thank you", "donations",
		FingerprintOrderValue()}
	swapped := append([]string{}, values...)
	swapped[1], swapped[2] = swapped[2], swapped[1]

	assert.NotEqual(t, Fingerprint("s3cret", values), Fingerprint("s3cret", swapped))
}

func TestOrderReferenceFreshness(t *testing.T) {
	first := initiate(t, donationData)
	second := initiate(t, donationData)

	assert.Len(t, first.OrderReference, 24) // 12 random bytes, hex-encoded
	assert.NotEqual(t, first.OrderReference, second.OrderReference)
	assert.Equal(t, first.OrderReference, first.DonationReference)
}

// The returned payload must verify with a digest recomputed independently
// from nothing but the returned fields and the shared secret, exactly as the
// portal does it.
func TestSignedPayloadVerifies(t *testing.T) {
	payload := initiate(t, donationData)

	assert.Equal(t, "D200001", payload.CustomerID)
	assert.Equal(t,
		"secret,customerId,amount,currency,language,orderDescription,successUrl,orderReference,customerStatement,shopId,requestFingerprintOrder",
		payload.RequestFingerprintOrder)

	mac := hmac.New(sha512.New, []byte("s3cret"))
	mac.Write([]byte("s3cret" +
		payload.CustomerID +
		payload.Amount +
		payload.Currency +
		payload.Language +
		payload.OrderDescription +
		payload.SuccessURL +
		payload.OrderReference +
		payload.CustomerStatement +
		payload.ShopID +
		payload.RequestFingerprintOrder))

	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), payload.RequestFingerprint)
}

func TestMalformedPayload(t *testing.T) {
	_, payErr := testGateway().Initiate(context.Background(), json.RawMessage(`{"amount":`))
	require.NotNil(t, payErr)
	assert.Equal(t, types.ErrKindClientInput, payErr.Kind)
	assert.Equal(t, http.StatusBadRequest, payErr.StatusCode)
}
