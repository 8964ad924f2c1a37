package mapper

import (
	"strings"

	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

func CertificateFromWire(w remote.Certificate) certificate.Certificate {
	return certificate.Certificate{
		ID:    w.CertificateID,
		Image: w.ImageURL,
		Alt:   w.AltText,
		Title: w.Title,
	}
}

func CertificatesFromWire(ws []remote.Certificate) []certificate.Certificate {
	out := make([]certificate.Certificate, len(ws))
	for i, w := range ws {
		out[i] = CertificateFromWire(w)
	}
	return out
}

func CertificatePayload(c certificate.Certificate) (remote.Certificate, error) {
	return gate(remote.Certificate{
		CertificateID: strings.TrimSpace(c.ID),
		ImageURL:      strings.TrimSpace(c.Image),
		AltText:       strings.TrimSpace(c.Alt),
		Title:         strings.TrimSpace(c.Title),
	})
}
