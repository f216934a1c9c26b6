// Package captcha implements the bot-verification gate placed in front of
// mutating form submissions. It speaks the reCAPTCHA siteverify protocol.
package captcha

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks submitted reCAPTCHA response tokens against the
// siteverify endpoint. A Verifier with an empty secret always passes: the
// gate is deliberately open when verification is not configured.
type Verifier struct {
	Secret    string
	VerifyURL string
	Client    *http.Client
}

// NewVerifier creates a Verifier for the given secret and endpoint.
func NewVerifier(secret, verifyURL string) *Verifier {
	return &Verifier{
		Secret:    secret,
		VerifyURL: verifyURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify reports whether the given response token passes verification.
// Transport or decode failures count as a failed verification when a
// secret is configured; the mutating flow must not proceed on them.
func (v *Verifier) Verify(ctx context.Context, token string) bool {
	if v.Secret == "" {
		return true
	}

	form := url.Values{
		"secret":   {v.Secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("captcha: failed to build siteverify request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		log.Printf("captcha: siteverify request failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("captcha: failed to decode siteverify response: %v", err)
		return false
	}

	if !result.Success && len(result.ErrorCodes) > 0 {
		log.Printf("captcha: verification rejected: %v", result.ErrorCodes)
	}
	return result.Success
}
