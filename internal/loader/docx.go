package loader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> including variants with attributes
// (e.g. <w:t xml:space="preserve">).
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// paragraphEnd splits the document body on paragraph boundaries so each
// FAQ line ("question|answer" per paragraph) stays on its own line.
var paragraphEnd = regexp.MustCompile(`</w:p>`)

// extractDOCX extracts text from .docx bytes, one line per paragraph.
// DOCX is a ZIP containing word/document.xml (OOXML); we pull the inner
// text of every <w:t> node per paragraph. We do not use lu4p/cat here
// because its regex only matches <w:p> without attributes, so real-world
// documents (e.g. <w:p w:rsidR="...">) yield empty text.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: open %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", fmt.Errorf("extract DOCX: read %s: %w", f.Name, err)
		}
		_ = rc.Close()
		docXML = buf.Bytes()
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", docxDocumentXMLPath)
	}

	var b strings.Builder
	for _, para := range paragraphEnd.Split(string(docXML), -1) {
		parts := wtTag.FindAllStringSubmatch(para, -1)
		if len(parts) == 0 {
			continue
		}
		var line strings.Builder
		for _, p := range parts {
			line.WriteString(p[1])
		}
		text := strings.TrimSpace(line.String())
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()), nil
}
