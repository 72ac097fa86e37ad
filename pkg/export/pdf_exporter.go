package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Certificate is the printable content of an adoption certificate.
type Certificate struct {
	Number      string
	Shelter     string
	AdopterName string
	DogName     string
	DogBreed    string
	AdoptedOn   string
	IssuedOn    string
}

// PDFExporter renders adoption certificates as single-page landscape PDFs.
type PDFExporter struct {
	shelter string
}

// NewPDFExporter constructs a renderer. shelter is printed when the certificate omits it.
func NewPDFExporter(shelter string) *PDFExporter {
	if shelter == "" {
		shelter = "Street Dog Rescue Shelter"
	}
	return &PDFExporter{shelter: shelter}
}

// RenderCertificate draws the certificate and returns the PDF bytes.
func (e *PDFExporter) RenderCertificate(cert Certificate) ([]byte, error) {
	if cert.Number == "" || cert.AdopterName == "" || cert.DogName == "" {
		return nil, fmt.Errorf("certificate number, adopter and dog are required")
	}
	shelter := cert.Shelter
	if shelter == "" {
		shelter = e.shelter
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Adoption Certificate "+cert.Number, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(14, 14, 269, 182, "D")

	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 14, "Certificate of Adoption", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(shelter), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, tr(cert.AdopterName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "has given a permanent home to", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	dog := cert.DogName
	if cert.DogBreed != "" {
		dog = fmt.Sprintf("%s (%s)", cert.DogName, cert.DogBreed)
	}
	pdf.CellFormat(0, 12, tr(dog), "", 1, "C", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	if cert.AdoptedOn != "" {
		pdf.CellFormat(0, 7, "Adopted on "+cert.AdoptedOn, "", 1, "C", false, 0, "")
	}
	if cert.IssuedOn != "" {
		pdf.CellFormat(0, 7, "Issued on "+cert.IssuedOn, "", 1, "C", false, 0, "")
	}
	pdf.SetY(180)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Certificate No. "+cert.Number, "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
