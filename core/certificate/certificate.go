// Package certificate renders course completion certificates and their verification QR codes.
package certificate

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
)

// Generator is safe for concurrent use.
type Generator struct {
	verifyBaseURL string
	size          int

	mu    sync.RWMutex
	cache map[string][]byte // {certificate number: png}
}

func NewGenerator(conf *core.Config) *Generator {
	return &Generator{
		verifyBaseURL: conf.Certificate.VerifyBaseURL,
		size:          conf.Certificate.QRSize,
		cache:         make(map[string][]byte),
	}
}

// VerificationURL is the public URL encoded in the QR code of certificate number.
func (g *Generator) VerificationURL(number string) string {
	base := g.verifyBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + number
}

// QRCode returns the PNG QR code of the certificate's verification URL.
// The image only depends on the certificate number, so it is cached by it.
func (g *Generator) QRCode(cert catalog.Certificate) ([]byte, error) {
	number := cert.CertificateNumber
	if number == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "certificateNumber", Error: "this field is required"})
	}

	g.mu.RLock()
	png, ok := g.cache[number]
	g.mu.RUnlock()
	if ok {
		return png, nil
	}

	png, err := qrcode.Encode(g.VerificationURL(number), qrcode.Medium, g.size)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding QR code of %s", number)
	}

	g.mu.Lock()
	g.cache[number] = png
	g.mu.Unlock()
	return png, nil
}

// View is what the printable certificate page shows.
type View struct {
	Certificate     catalog.Certificate
	VerificationURL string
	QRPath          string
	Completed       string
}

func (g *Generator) View(cert catalog.Certificate) View {
	return View{
		Certificate:     cert,
		VerificationURL: g.VerificationURL(cert.CertificateNumber),
		QRPath:          "/certificates/" + cert.CertificateNumber + "/qr.png",
		Completed:       cert.CompletionDate.Format("January 2, 2006"),
	}
}
