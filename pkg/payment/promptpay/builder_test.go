package promptpay

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MerchantID: "0812345678",
		QRBaseURL:  "https://api.qrserver.com/v1/create-qr-code/",
		QRSize:     "300x300",
	}
}

func TestNewBuilder(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		b, err := NewBuilder(testConfig())
		require.NoError(t, err)
		assert.Equal(t, "0066812345678", b.account)
	})

	t.Run("missing merchant", func(t *testing.T) {
		cfg := testConfig()
		cfg.MerchantID = ""
		_, err := NewBuilder(cfg)
		assert.ErrorIs(t, err, ErrInvalidMerchant)
	})

	t.Run("missing QR endpoint", func(t *testing.T) {
		cfg := testConfig()
		cfg.QRBaseURL = ""
		_, err := NewBuilder(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("formatted phone number", func(t *testing.T) {
		cfg := testConfig()
		cfg.MerchantID = "081-234-5678"
		b, err := NewBuilder(cfg)
		require.NoError(t, err)
		assert.Equal(t, "0066812345678", b.account)
	})
}

func TestBuildPayload(t *testing.T) {
	b, err := NewBuilder(testConfig())
	require.NoError(t, err)

	t.Run("payload structure", func(t *testing.T) {
		payload, err := b.BuildPayload(350)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(payload, "000201"), "payload format indicator")
		assert.Contains(t, payload, "010211", "static point of initiation")
		assert.Contains(t, payload, "0016A000000677010111", "PromptPay AID")
		assert.Contains(t, payload, "01130066812345678", "13-digit phone account")
		assert.Contains(t, payload, "5802TH", "country code")
		assert.Contains(t, payload, "5303764", "THB currency code")
	})

	t.Run("amount has two implied decimals", func(t *testing.T) {
		payload, err := b.BuildPayload(350)
		require.NoError(t, err)
		assert.Contains(t, payload, "540535000")

		payload, err = b.BuildPayload(1234.50)
		require.NoError(t, err)
		assert.Contains(t, payload, "5406123450")
	})

	t.Run("checksum terminates the payload", func(t *testing.T) {
		payload, err := b.BuildPayload(350)
		require.NoError(t, err)

		crcIdx := strings.LastIndex(payload, "6304")
		require.Equal(t, len(payload)-8, crcIdx, "CRC field is last")

		body := payload[:crcIdx+4]
		checksum := payload[crcIdx+4:]
		assert.Equal(t, strings.ToUpper(checksum), checksum)
		assert.Equal(t, 4, len(checksum))

		expected := crc16(body)
		assert.Equal(t, payloadChecksum(t, checksum), expected)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := b.BuildPayload(0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = b.BuildPayload(-10)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("deterministic for the same amount", func(t *testing.T) {
		first, err := b.BuildPayload(499)
		require.NoError(t, err)
		second, err := b.BuildPayload(499)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestQRImageURL(t *testing.T) {
	b, err := NewBuilder(testConfig())
	require.NoError(t, err)

	rawURL, err := b.QRImageURL(350)
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "api.qrserver.com", parsed.Host)
	assert.Equal(t, "300x300", parsed.Query().Get("size"))

	payload, err := b.BuildPayload(350)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed.Query().Get("data"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
		err   bool
	}{
		{name: "local mobile", phone: "0812345678", want: "0066812345678"},
		{name: "dashed", phone: "081-234-5678", want: "0066812345678"},
		{name: "empty", phone: "", err: true},
		{name: "no digits", phone: "abc", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePhone(tt.phone)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidMerchant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCRC16(t *testing.T) {
	// Reference vector for CRC-16/CCITT-FALSE.
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func payloadChecksum(t *testing.T, hexDigits string) uint16 {
	t.Helper()
	var v uint16
	for _, r := range hexDigits {
		var d uint16
		switch {
		case r >= '0' && r <= '9':
			d = uint16(r - '0')
		case r >= 'A' && r <= 'F':
			d = uint16(r-'A') + 10
		default:
			t.Fatalf("invalid checksum digit %q", r)
		}
		v = v<<4 | d
	}
	return v
}
