package nostrlikes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/nbd-wtf/go-nostr/nip19"
	"github.com/stretchr/testify/require"
)

const (
	sampleNpub = "npub10elfcs4fr0l0r8af98jlmgdh9c8tcxjvz9qkw038js35mp4dma8qzvjptg"
	sampleHex  = "7e7e9c42a91bfef19fa929e5fda1b72e0ebc1a4c1141673e2794234d86addf4e"
)

func encode(t *testing.T, hrp string, raw []byte, m bool) string {
	t.Helper()
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	require.NoError(t, err)
	var s string
	if m {
		s, err = bech32.EncodeM(hrp, data)
	} else {
		s, err = bech32.Encode(hrp, data)
	}
	require.NoError(t, err)
	return s
}

func TestDecodeNpub(t *testing.T) {
	pk, err := DecodeNpub(sampleNpub)
	require.NoError(t, err)
	require.Equal(t, sampleHex, pk.Hex())
	require.Equal(t, sampleNpub, pk.Npub())
	require.Equal(t, sampleNpub, pk.String())
}

func TestDecodeNpubUppercase(t *testing.T) {
	pk, err := DecodeNpub(strings.ToUpper(sampleNpub))
	require.NoError(t, err)
	require.Equal(t, sampleNpub, pk.Npub())
}

func TestDecodeNpubRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		sk, err := btcec.NewPrivateKey()
		require.NoError(t, err)
		raw := schnorr.SerializePubKey(sk.PubKey())

		npub := encode(t, "npub", raw, false)
		pk, err := DecodeNpub(npub)
		require.NoError(t, err)
		require.True(t, bytes.Equal(raw, pk[:]))

		canonical, err := nip19.EncodePublicKey(pk.Hex())
		require.NoError(t, err)
		require.Equal(t, canonical, pk.Npub())

		again, err := DecodeNpub(pk.Npub())
		require.NoError(t, err)
		require.Equal(t, pk, again)
	}
}

func TestDecodeNpubErrors(t *testing.T) {
	valid, err := DecodeNpub(sampleNpub)
	require.NoError(t, err)

	offCurve := bytes.Repeat([]byte{0xff}, 32)

	for _, tc := range []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", ErrInvalidEncoding},
		{"not bech32", "hello world", ErrInvalidEncoding},
		{"hex", sampleHex, ErrInvalidEncoding},
		{"bad checksum", sampleNpub[:len(sampleNpub)-1] + "q", ErrInvalidEncoding},
		{"mixed case", "Npub" + sampleNpub[4:], ErrInvalidEncoding},
		{"nsec", encode(t, "nsec", valid[:], false), ErrWrongPrefix},
		{"note", encode(t, "note", valid[:], false), ErrWrongPrefix},
		{"nprofile-ish", encode(t, "npubx", valid[:], false), ErrWrongPrefix},
		{"bech32m", encode(t, "npub", valid[:], true), ErrWrongVariant},
		{"incomplete group", mustEncode(t, "npub", []byte{31}), ErrMalformedPayload},
		{"short key", encode(t, "npub", valid[:20], false), ErrInvalidPublicKey},
		{"long key", encode(t, "npub", append(valid[:], 1), false), ErrInvalidPublicKey},
		{"off curve", encode(t, "npub", offCurve, false), ErrInvalidPublicKey},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeNpub(tc.input)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDecodeNpubWrongPrefixBeforeVariant(t *testing.T) {
	valid, _ := DecodeNpub(sampleNpub)
	_, err := DecodeNpub(encode(t, "nsec", valid[:], true))
	require.ErrorIs(t, err, ErrWrongPrefix)
}

// mustEncode encodes already 5-bit grouped data.
func mustEncode(t *testing.T, hrp string, data []byte) string {
	t.Helper()
	s, err := bech32.Encode(hrp, data)
	require.NoError(t, err)
	return s
}
