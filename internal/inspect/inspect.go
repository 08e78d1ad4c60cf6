// Package inspect looks at input PDFs locally before they are sent for recognition.
package inspect

import (
	"fmt"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	rpdf "rsc.io/pdf"
)

// ErrUnreadable marks files the local parsers could not read. Callers may
// treat it as advisory since the remote service can still accept the file.
var ErrUnreadable = eris.New("not a readable PDF")

type Report struct {
	Path         string `json:"path"`
	Bytes        int64  `json:"bytes"`
	Pages        int    `json:"pages"`
	HasTextLayer bool   `json:"has_text_layer"`
}

// File opens path as a PDF. A parse failure returns the partial report
// (path and size) together with an error wrapping ErrUnreadable.
func File(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return Report{}, eris.Wrapf(err, "stat %s", path)
	}
	if st.IsDir() {
		return Report{}, eris.Errorf("%s is a directory", path)
	}

	rep := Report{Path: path, Bytes: st.Size()}
	rep.Pages, err = pageCount(f, st.Size())
	if err != nil {
		return rep, eris.Wrapf(ErrUnreadable, "%s: %v", path, err)
	}
	rep.HasTextLayer = hasTextLayer(f, st.Size())
	return rep, nil
}

func pageCount(f *os.File, size int64) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	doc, err := rpdf.NewReader(f, size)
	if err != nil {
		return 0, err
	}
	return doc.NumPage(), nil
}

// hasTextLayer reports whether any page already carries extractable text.
// Read errors count as "no text layer"; the check is advisory.
func hasTextLayer(f *os.File, size int64) (found bool) {
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	r, err := lpdf.NewReader(f, size)
	if err != nil {
		return false
	}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return true
		}
	}
	return false
}
