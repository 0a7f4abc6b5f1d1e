package service

// QRCodeService defines the interface for QR code generation.
type QRCodeService interface {
	// GenerateGiftQR renders a PNG QR code pointing at the given gift
	// share URL.
	GenerateGiftQR(shareURL string) ([]byte, error)
}
