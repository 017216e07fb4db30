package nostrlikes

import "errors"

// identifier decoding
var (
	ErrInvalidEncoding  = errors.New("invalid bech32 encoding")
	ErrWrongPrefix      = errors.New("only npub... is allowed")
	ErrWrongVariant     = errors.New("only bech32 (not bech32m) is allowed")
	ErrMalformedPayload = errors.New("malformed bech32 payload")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// relay
var (
	ErrRelayConnect = errors.New("failed to connect to relay")
	ErrQueryTimeout = errors.New("relay query timed out")
	ErrRelayQuery   = errors.New("relay query failed")
)

// cache
var (
	ErrCacheCorrupt = errors.New("event cache is corrupt")
	ErrCachePersist = errors.New("failed to persist event cache")

	ErrNotFound = errors.New("event not found")
	ErrDupEvent = errors.New("duplicate: event already exists")
)
