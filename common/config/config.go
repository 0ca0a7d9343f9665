package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	Version = "v1.0.0"
	Debug   = false
)

func InitConf() {
	defaultConfig()
	setEnv()

	if viper.GetString("log_level") == "debug" {
		Debug = true
	}
}

func setEnv() {
	viper.SetEnvPrefix("givehub")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func defaultConfig() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("gin_mode", "release")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("cors.allowed_origin", "*")
	viper.SetDefault("payment.request_timeout", 1)
	viper.SetDefault("storage.backend", "memory")
	viper.SetDefault("storage.redis.addr", "localhost:6379")
	viper.SetDefault("storage.redis.db", 0)
	viper.SetDefault("storage.s3.region", "us-east-1")
}

// PaymentConfig carries the credentials and endpoints of every payment
// gateway. It is built once at startup and passed by reference into the
// dispatcher, so no gateway reads ambient state after boot.
type PaymentConfig struct {
	// NotifyBaseURL is the public base URL of this service, used to build
	// the capture notification callback handed to the card-token processor.
	NotifyBaseURL  string
	RequestTimeout time.Duration

	CardToken      CardTokenConfig
	CheckoutPortal CheckoutPortalConfig
	Wallet         WalletConfig
	Crypto         CryptoConfig
}

type CardTokenConfig struct {
	APIBase string
	APIKey  string
}

type CheckoutPortalConfig struct {
	// Secret is the shared signing secret of the checkout portal, used as
	// both HMAC key and message prefix.
	Secret string
	// CustomerID is the fixed merchant identity registered with the portal.
	CustomerID string
}

type WalletConfig struct {
	APIBase string
	APIKey  string
}

type CryptoConfig struct {
	APIBase string
	APIKey  string
}

// LoadPaymentConfig reads the payment section of the configuration.
func LoadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		NotifyBaseURL:  viper.GetString("payment.notify_base_url"),
		RequestTimeout: time.Duration(viper.GetInt("payment.request_timeout")) * time.Second,
		CardToken: CardTokenConfig{
			APIBase: viper.GetString("payment.cardtoken.api_base"),
			APIKey:  viper.GetString("payment.cardtoken.api_key"),
		},
		CheckoutPortal: CheckoutPortalConfig{
			Secret:     viper.GetString("payment.checkoutportal.secret"),
			CustomerID: viper.GetString("payment.checkoutportal.customer_id"),
		},
		Wallet: WalletConfig{
			APIBase: viper.GetString("payment.wallet.api_base"),
			APIKey:  viper.GetString("payment.wallet.api_key"),
		},
		Crypto: CryptoConfig{
			APIBase: viper.GetString("payment.crypto.api_base"),
			APIKey:  viper.GetString("payment.crypto.api_key"),
		},
	}
}
