package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

const totpIssuer = "Banknote Gallery"

// TOTPService handles two-factor secret provisioning and verification.
type TOTPService struct{}

// NewTOTPService creates a new TOTP service.
func NewTOTPService() *TOTPService {
	return &TOTPService{}
}

// GenerateSecret creates a new TOTP secret for the given username.
func (s *TOTPService) GenerateSecret(username string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: username,
	})
	if err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}
	return key.Secret(), nil
}

// ProvisioningURI returns the otpauth:// URI for authenticator apps.
func (s *TOTPService) ProvisioningURI(username, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		totpIssuer, username, secret, totpIssuer)
}

// QRCodeBase64 renders the provisioning URI as a base64-encoded PNG.
func (s *TOTPService) QRCodeBase64(uri string) (string, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// Verify checks a TOTP code against the secret.
func (s *TOTPService) Verify(secret, code string) bool {
	return totp.Validate(code, secret)
}

// VerifySetup checks a TOTP code with a wider window. Authenticator clocks
// are often skewed right after enrollment.
func (s *TOTPService) VerifySetup(secret, code string) bool {
	if totp.Validate(code, secret) {
		return true
	}
	opts := totp.ValidateOpts{
		Period:    30,
		Skew:      2,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), opts)
	return err == nil && ok
}
