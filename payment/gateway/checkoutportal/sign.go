package checkoutportal

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// FingerprintOrder is the canonical signed-field order the portal verifies
// against. It must never be reordered: the digest commits to position, and
// the portal recomputes it with exactly this sequence.
var FingerprintOrder = []string{
	"customerId",
	"amount",
	"currency",
	"language",
	"orderDescription",
	"successUrl",
	"orderReference",
	"customerStatement",
	"shopId",
	"requestFingerprintOrder",
}

// FingerprintOrderValue is the literal content of the signed
// requestFingerprintOrder field: the secret sentinel followed by the field
// names, so the receiving side can verify the order independently.
func FingerprintOrderValue() string {
	return "secret," + strings.Join(FingerprintOrder, ",")
}

// Fingerprint computes the keyed request digest: HMAC-SHA512 keyed with the
// shared secret, over the secret followed by the field values concatenated
// in order with no delimiter. Hex-encoded, lower case.
func Fingerprint(secret string, values []string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(secret))
	for _, value := range values {
		mac.Write([]byte(value))
	}
	return hex.EncodeToString(mac.Sum(nil))
}
