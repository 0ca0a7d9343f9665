package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// GetRandomHex returns the hex encoding of byteLen bytes drawn from the
// system CSPRNG. Used for order references and one-shot customer ids, so a
// weak source here would be a security defect, not a cosmetic one.
func GetRandomHex(byteLen int) string {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// continuing with predictable references is worse than crashing.
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func IsFileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func GetOrDefault(key string, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func MessageWithRequestId(message string, id string) string {
	return fmt.Sprintf("%s (request id: %s)", message, id)
}
