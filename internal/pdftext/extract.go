package pdftext

import (
	"bytes"
	"log"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
)

const (
	// maxPages bounds how much of a document is read for quiz generation.
	maxPages = 10
	// maxChars is the prompt size ceiling of the generative backend.
	maxChars = 15000
)

// Extract pulls plain text from the raw bytes of a PDF. It reads at most
// the first 10 pages, joins page texts with newlines and truncates the
// result to 15000 characters.
//
// Extract never fails: a corrupt or unreadable document yields "", which
// callers treat as "no extractable text". The underlying pdf package is
// known to panic on some malformed inputs, so failures are absorbed here.
func Extract(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARN: PDF extraction panicked: %v", r)
			text = ""
		}
	}()

	if len(data) == 0 {
		return ""
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("WARN: Failed to open PDF: %v", err)
		return ""
	}

	pages := r.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			// An unreadable page is skipped, not fatal.
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
		if sb.Len() >= maxChars {
			break
		}
	}

	return truncate(sb.String(), maxChars)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
