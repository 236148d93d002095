package common

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// HMACSHA512Hex signs message with secret and returns the lowercase hex
// digest, the form exchanges expect in signature headers.
func HMACSHA512Hex(secret, message string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
