package service

import "unibite/internal/domain/entity"

// QRCodeService renders generated shop credentials as a scannable image the
// operator can hand to the shop owner.
type QRCodeService interface {
	// GenerateCredentialQR encodes the credential pair as a PNG QR code.
	GenerateCredentialQR(credential *entity.ShopCredential) ([]byte, error)
}
