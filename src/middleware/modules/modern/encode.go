package modern

import (
	"crypto/sha512"
	"encoding/hex"
)

// EncodePassword computes the login digest the modern API expects:
// SHA512(hex(SHA512(password)) || captcha), hex encoded. Both stages use the
// full 64-byte digest as lowercase hex. The display compares the result
// byte-for-byte and answers with a generic failure on any mismatch.
func EncodePassword(password, captcha string) string {
	first := sha512.Sum512([]byte(password))
	firstHex := hex.EncodeToString(first[:])

	final := sha512.Sum512([]byte(firstHex + captcha))
	return hex.EncodeToString(final[:])
}
