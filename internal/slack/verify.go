package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// signatureVersion is the Slack signing scheme version prefix.
const signatureVersion = "v0"

// maxTimestampSkew rejects replayed requests older than this window.
const maxTimestampSkew = 5 * time.Minute

var (
	ErrStaleTimestamp = errors.New("request timestamp outside allowed window")
	ErrBadSignature   = errors.New("signature mismatch")
)

// VerifySignature checks the X-Slack-Signature header against the signing
// secret, request timestamp, and raw body.
func VerifySignature(signingSecret, timestamp, signature string, body []byte) error {
	return verifySignatureAt(signingSecret, timestamp, signature, body, time.Now())
}

func verifySignatureAt(signingSecret, timestamp, signature string, body []byte, now time.Time) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request timestamp: %w", err)
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > maxTimestampSkew || age < -maxTimestampSkew {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "%s:%s:%s", signatureVersion, timestamp, body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}

	return nil
}
