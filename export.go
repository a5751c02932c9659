package koinly

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// costPlaceholder is written when no cost basis could be attributed to a
// holding. The field stays human-visibly wrong rather than silently zero.
const costPlaceholder = "CUSTO A VERIFICAR"

// utf8BOM makes the file open correctly in Excel on Windows, the typical
// consumer of the output.
const utf8BOM = "\ufeff"

// OutputName is the CSV file name derived from the input document name:
// "report-2024.pdf" -> "report-2024_final.csv".
func OutputName(input string) string {
	dir := filepath.Dir(input)
	return filepath.Join(dir, stem(input)+"_final.csv")
}

// WriteCSV renders the report as the declaration spreadsheet: semicolon
// separated, every field quoted, UTF-8 with BOM. One row per wallet holding,
// in document order.
func WriteCSV(w io.Writer, r *Report) error {
	cw := &csvWriter{w: w}
	cw.writeString(utf8BOM)
	cw.writeRow("Ticker", "Qtd", fmt.Sprintf("Custo R$ 31/12/%d", r.Year), "Discriminação")

	for _, g := range r.Wallets {
		for _, h := range g.Holdings {
			cost := costPlaceholder
			if h.AttributedCost != nil {
				cost = h.AttributedCost.DeclarationString()
			}
			cw.writeRow(strings.ToUpper(h.Symbol()), h.Amount.Comma(), cost, h.Disclosure)
		}
	}
	return cw.err
}

// ExportFile processes nothing itself; it writes an already processed report
// next to its input document and returns the output path.
func ExportFile(input string, r *Report) (string, error) {
	out := OutputName(input)
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("cannot create %q: %w", out, err)
	}
	if err := WriteCSV(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("cannot write %q: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot close %q: %w", out, err)
	}
	return out, nil
}

// csvWriter writes semicolon-separated rows with every field quoted.
// encoding/csv only quotes fields that need it, and the downstream import
// expects uniform quoting, hence the hand-rolled writer.
type csvWriter struct {
	w   io.Writer
	err error
}

func (cw *csvWriter) writeString(s string) {
	if cw.err != nil {
		return
	}
	_, cw.err = io.WriteString(cw.w, s)
}

func (cw *csvWriter) writeRow(fields ...string) {
	if cw.err != nil {
		return
	}
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
	cw.writeString(b.String())
}
