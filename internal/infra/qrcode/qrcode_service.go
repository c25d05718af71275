// Package qrcode renders generated shop credentials as PNG QR codes.
package qrcode

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"

	"unibite/config"
	"unibite/internal/domain/entity"
	"unibite/internal/domain/service"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// CredentialQRData is the payload encoded into a credential QR code.
type CredentialQRData struct {
	ShopID  string `json:"shop_id"`
	LoginID string `json:"login_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	levelName := ""
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		levelName = cfg.QRCode.ErrorCorrectionLevel
	}

	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateCredentialQR encodes the credential pair as a PNG QR code. The
// password itself stays out of the image; the shop owner receives it through
// a separate channel and the QR carries only the login identity.
func (s *qrcodeService) GenerateCredentialQR(credential *entity.ShopCredential) ([]byte, error) {
	data := CredentialQRData{
		ShopID:  credential.ShopID.String(),
		LoginID: credential.LoginID,
		Type:    "shop_credential",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
