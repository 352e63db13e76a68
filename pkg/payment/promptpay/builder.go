package promptpay

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// EMVCo tag and value constants of the Thai PromptPay QR standard. These are
// fixed by the external protocol, not by this system.
const (
	idPayloadFormat       = "00"
	idPointOfInitiation   = "01"
	idMerchantAccountInfo = "29"
	idCountryCode         = "58"
	idCurrencyCode        = "53"
	idAmount              = "54"
	idCRC                 = "63"

	payloadFormatEMV    = "01"
	initiationStatic    = "11"
	promptPayAID        = "A000000677010111"
	countryTH           = "TH"
	currencyTHB         = "764" // ISO 4217 numeric code for Thai Baht
	accountIDPhone      = "01"
	merchantAccountAID  = "00"
	phoneAccountLength  = 13
)

// Builder generates PromptPay EMVCo payloads and QR image URLs for a fixed
// merchant.
type Builder struct {
	config  Config
	account string
}

// NewBuilder creates a new PromptPay builder with the given configuration
func NewBuilder(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	account, err := normalizePhone(config.MerchantID)
	if err != nil {
		return nil, err
	}

	return &Builder{
		config:  config,
		account: account,
	}, nil
}

// GetConfig returns the builder configuration
func (b *Builder) GetConfig() Config {
	return b.config
}

// BuildPayload encodes the payable amount into the PromptPay EMVCo payload.
// The amount is rendered fixed-point with two implied decimal digits and the
// payload is terminated by its CRC-16/CCITT checksum.
func (b *Builder) BuildPayload(amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	merchantInfo := tlv(merchantAccountAID, promptPayAID) + tlv(accountIDPhone, b.account)

	var sb strings.Builder
	sb.WriteString(tlv(idPayloadFormat, payloadFormatEMV))
	sb.WriteString(tlv(idPointOfInitiation, initiationStatic))
	sb.WriteString(tlv(idMerchantAccountInfo, merchantInfo))
	sb.WriteString(tlv(idCountryCode, countryTH))
	sb.WriteString(tlv(idCurrencyCode, currencyTHB))
	sb.WriteString(tlv(idAmount, encodeAmount(amount)))

	// The CRC is computed over the payload including its own tag and length.
	sb.WriteString(idCRC + "04")
	payload := sb.String()
	return fmt.Sprintf("%s%04X", payload, crc16(payload)), nil
}

// QRImageURL returns the external image-service URL rendering the payload
// for the given amount.
func (b *Builder) QRImageURL(amount float64) (string, error) {
	payload, err := b.BuildPayload(amount)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("size", b.config.QRSize)
	params.Set("data", payload)
	return fmt.Sprintf("%s?%s", b.config.QRBaseURL, params.Encode()), nil
}

// tlv renders one EMVCo tag-length-value field. Lengths are always two
// decimal digits.
func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// encodeAmount renders the amount with two implied decimal digits, e.g.
// 350 -> "35000".
func encodeAmount(amount float64) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(2)
	return strings.Replace(fixed, ".", "", 1)
}

// normalizePhone converts a local Thai phone number to the 13-digit national
// account form, e.g. "0812345678" -> "0066812345678".
func normalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if number == "" {
		return "", ErrInvalidMerchant
	}
	number = "66" + strings.TrimPrefix(number, "0")
	for len(number) < phoneAccountLength {
		number = "0" + number
	}
	if len(number) != phoneAccountLength {
		return "", ErrInvalidMerchant
	}
	return number, nil
}

// crc16 implements CRC-16/CCITT-FALSE as required by the EMVCo QR spec.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
