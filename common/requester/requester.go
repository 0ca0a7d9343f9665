package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"give-hub/payment/types"
)

// HttpErrorHandler lets a gateway decode its provider's error body into a
// meaningful detail string. Returning "" falls back to the generic detail.
type HttpErrorHandler func(resp *http.Response) string

type HTTPRequester struct {
	HTTPClient   *http.Client
	ErrorHandler HttpErrorHandler
}

// NewHTTPRequester builds a requester with the per-call timeout every
// outbound provider call is bounded by. A timeout surfaces as an upstream
// failure, never as a raw transport error.
func NewHTTPRequester(timeout time.Duration, errorHandler HttpErrorHandler) *HTTPRequester {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &HTTPRequester{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		ErrorHandler: errorHandler,
	}
}

type requestOptions struct {
	body   any
	header http.Header
}

type requestOption func(*requestOptions)

func (r *HTTPRequester) WithBody(body any) requestOption {
	return func(args *requestOptions) {
		args.body = body
	}
}

func (r *HTTPRequester) WithHeader(header map[string]string) requestOption {
	return func(args *requestOptions) {
		for k, v := range header {
			args.header.Set(k, v)
		}
	}
}

func (r *HTTPRequester) NewRequest(ctx context.Context, method, url string, setters ...requestOption) (*http.Request, error) {
	args := &requestOptions{
		header: make(http.Header),
	}
	for _, setter := range setters {
		setter(args)
	}

	var bodyReader io.Reader
	if args.body != nil {
		switch body := args.body.(type) {
		case json.RawMessage:
			bodyReader = bytes.NewReader(body)
		case []byte:
			bodyReader = bytes.NewReader(body)
		default:
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			bodyReader = bytes.NewReader(encoded)
		}
		args.header.Set("Content-Type", "application/json")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header = args.header

	return req, nil
}

// SendRequest performs the call and decodes a JSON success body into
// response. Any failure on the wire or a non-2xx status is translated into
// an upstream PaymentError carrying the generic failMessage; provider
// internals stay in the Detail field.
func (r *HTTPRequester) SendRequest(req *http.Request, response any, failMessage string) *types.PaymentError {
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return types.UpstreamError(failMessage, fmt.Sprintf("transport error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if r.ErrorHandler != nil {
			if providerDetail := r.ErrorHandler(resp); providerDetail != "" {
				detail = fmt.Sprintf("%s: %s", detail, providerDetail)
			}
		}
		return types.UpstreamError(failMessage, detail)
	}

	if response == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return types.UpstreamError(failMessage, fmt.Sprintf("undecodable response body: %v", err))
	}

	return nil
}
