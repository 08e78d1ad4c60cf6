package convert

import (
	"os"

	"github.com/rotisserie/eris"
)

// Separator follows every file's text in the txt output.
const Separator = "## END OF THE FILE ##"

// appendText adds one file's text and the separator to path, creating it if needed.
// Earlier contents, including those from previous runs, are kept.
func appendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "open %s", path)
	}
	if _, err := f.WriteString(text + "\n" + Separator + "\n"); err != nil {
		f.Close()
		return eris.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
