package nostrlikes

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// PublicKey is a BIP-340 x-only public key.
type PublicKey [32]byte

// DecodeNpub turns an "npub1..." string into a PublicKey.
// Only the original bech32 checksum is accepted, bech32m is rejected.
func DecodeNpub(s string) (PublicKey, error) {
	var pk PublicKey

	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	if hrp != "npub" {
		return pk, fmt.Errorf("%w (got '%s')", ErrWrongPrefix, hrp)
	}
	if version != bech32.Version0 {
		return pk, ErrWrongVariant
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return pk, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if len(raw) != len(pk) {
		return pk, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, len(pk), len(raw))
	}
	if _, err := schnorr.ParsePubKey(raw); err != nil {
		return pk, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	copy(pk[:], raw)
	return pk, nil
}

func (pk PublicKey) Hex() string { return hex.EncodeToString(pk[:]) }

// Npub is the canonical bech32 encoding of the key.
func (pk PublicKey) Npub() string {
	npub, err := nip19.EncodePublicKey(pk.Hex())
	if err != nil {
		// a decoded key is always 32 valid bytes
		panic(err)
	}
	return npub
}

func (pk PublicKey) String() string { return pk.Npub() }
