// Package qrsign produces and verifies the HMAC-signed payload embedded in
// parking access QR codes.
//
// The canonical payload is compact JSON with the fixed key order
// booking_id, start_time, end_time and second-precision UTC timestamps.
// Any change to this encoding invalidates every token issued before it.
package qrsign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// TimeLayout is the only timestamp format accepted in the canonical payload.
const TimeLayout = "2006-01-02T15:04:05Z"

// SignatureHexLength is the length of a hex encoded HMAC-SHA256 digest.
const SignatureHexLength = sha256.Size * 2

var ErrEmptyKey = errors.New("qrsign: signing key is empty")

// Claims are the signed fields of a token.
type Claims struct {
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
}

type canonicalPayload struct {
	BookingID string `json:"booking_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type tokenPayload struct {
	BookingID string `json:"booking_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Signature string `json:"signature"`
}

// Signer signs and verifies claims with a shared secret.
type Signer struct {
	key []byte
}

func NewSigner(key string) (*Signer, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Signer{key: []byte(key)}, nil
}

// FormatTime renders t the way the canonical payload expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// CanonicalPayload returns the exact bytes covered by the signature.
func CanonicalPayload(c Claims) []byte {
	// Marshal of a struct with string fields cannot fail.
	b, _ := json.Marshal(canonicalPayload{
		BookingID: strconv.FormatInt(c.BookingID, 10),
		StartTime: FormatTime(c.StartTime),
		EndTime:   FormatTime(c.EndTime),
	})
	return b
}

// Sign returns the lowercase hex HMAC-SHA256 of the canonical payload.
func (s *Signer) Sign(c Claims) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(CanonicalPayload(c))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the claims. The comparison is
// constant time; a signature that is not valid hex never matches.
func (s *Signer) Verify(c Claims, signature string) bool {
	presented, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(CanonicalPayload(c))
	return hmac.Equal(mac.Sum(nil), presented)
}

// Issue returns the token string to be rendered into a QR image: the
// canonical fields followed by the signature.
func (s *Signer) Issue(c Claims) string {
	b, _ := json.Marshal(tokenPayload{
		BookingID: strconv.FormatInt(c.BookingID, 10),
		StartTime: FormatTime(c.StartTime),
		EndTime:   FormatTime(c.EndTime),
		Signature: s.Sign(c),
	})
	return string(b)
}
