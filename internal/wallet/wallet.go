package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Compose builds the sign-in message a wallet is asked to sign. It binds
// the serving domain, the wallet address and an issuance timestamp. The
// timestamp is informational only: the server does not keep challenge
// state, so an already-signed message stays verifiable until the client
// discards it.
func Compose(domain, address string, now time.Time) string {
	return fmt.Sprintf("Sign this message to authenticate with %s.\n\nWallet: %s\nTimestamp: %s",
		domain, address, now.UTC().Format(time.RFC3339))
}

// Verify reports whether signatureB64 is a valid detached ed25519
// signature over the raw UTF-8 bytes of message, under the public key
// encoded by the base58 address. It fails closed: malformed address,
// malformed signature encoding and signature mismatch all return false,
// indistinguishably.
func Verify(address, signatureB64, message string) bool {
	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pubKey.Bytes(), []byte(message), sig)
}

// ValidAddress reports whether s parses as a base58 32-byte public key.
func ValidAddress(s string) bool {
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}
