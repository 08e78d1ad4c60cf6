package convert

import (
	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontFamily = "GoRegular"
	fontSize   = 14
	lineHeight = 10
)

// renderPDF writes text into a new A4 document at path, replacing any existing file.
// Long lines wrap at the page margin and new pages are added as needed.
func renderPDF(path, text string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	doc.SetFont(fontFamily, "", fontSize)
	doc.AddPage()
	doc.MultiCell(0, lineHeight, text, "", "", false)
	if err := doc.OutputFileAndClose(path); err != nil {
		return eris.Wrapf(err, "render %s", path)
	}
	return nil
}
