package pdfrender

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
)

// Signer applies an optional digital signature to generated certificate
// PDFs so their authenticity can be verified in a PDF viewer.
type Signer struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	college     string
	enabled     bool
}

// NewSigner loads the signing keypair from PEM files. A nil config (no
// cert/key paths) yields a disabled signer that passes PDFs through.
func NewSigner(certPath string, keyPath string, college string) (*Signer, error) {
	if certPath == "" || keyPath == "" {
		return &Signer{enabled: false}, nil
	}

	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", certPath, err)
	}

	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", certPath)
	}

	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", keyPath, err)
	}

	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", keyPath)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
	if err != nil {
		key, pkcs8Err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
		if pkcs8Err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		var ok bool
		privateKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA format")
		}
	}

	slog.Info("PDF signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &Signer{
		certificate: certificate,
		privateKey:  privateKey,
		college:     college,
		enabled:     true,
	}, nil
}

// Sign returns the signed PDF, or the input unchanged when disabled.
func (s *Signer) Sign(pdfBytes []byte) ([]byte, error) {
	if s == nil || !s.enabled {
		return pdfBytes, nil
	}
	if len(pdfBytes) == 0 {
		return pdfBytes, fmt.Errorf("empty PDF bytes")
	}

	inputReader := bytes.NewReader(pdfBytes)
	size := int64(len(pdfBytes))

	pdfReader, err := digitorus_pdf.NewReader(inputReader, size)
	if err != nil {
		return pdfBytes, fmt.Errorf("failed to open PDF for signing: %w", err)
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     s.college,
				Location: "Event Certificate Platform",
				Reason:   "Certificate authenticity",
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	var output bytes.Buffer
	if err := sign.Sign(inputReader, &output, pdfReader, size, signData); err != nil {
		return pdfBytes, fmt.Errorf("failed to sign PDF: %w", err)
	}

	return output.Bytes(), nil
}
