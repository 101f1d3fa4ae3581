// Package labcfg serializes lab documents into the INI-like configuration
// format read by the virtual-lab provisioning tool.
package labcfg

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	bannerRule = "#-------------------------------------------------------------------"
	// continuationIndent prefixes every line after the first of a multi-line value.
	continuationIndent = "  "
	enabled            = "1"
)

// Encoder implements ports.DocumentEncoder.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes doc to w.
func (e *Encoder) Encode(w io.Writer, doc *domain.Document) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(doc) {
		if _, err := bw.WriteString(line); err != nil {
			return zerr.Wrap(err, "failed to write document")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return zerr.Wrap(err, "failed to write document")
		}
	}
	if err := bw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to flush document")
	}
	return nil
}

// Marshal returns the encoded document.
func Marshal(doc *domain.Document) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = NewEncoder().Encode(&buf, doc)
	return buf.Bytes()
}

// Lines returns the document as text lines without line terminators.
func Lines(doc *domain.Document) []string {
	lines := make([]string, 0, 4+doc.Len()*24)
	for _, h := range doc.Header {
		lines = append(lines, comment(h))
	}
	if len(doc.Header) > 0 {
		lines = append(lines, "")
	}

	for _, section := range doc.Sections {
		lines = append(lines, bannerRule, comment(section.Title), bannerRule, "")
		for i := range section.Records {
			lines = appendRecord(lines, &section.Records[i])
			lines = append(lines, "")
		}
	}
	return lines
}

func appendRecord(lines []string, rec *domain.LabRecord) []string {
	lines = append(lines,
		"["+rec.Label+"]",
		assign("desc", rec.Description),
		assign("distro", string(rec.Distribution)),
	)
	lines = append(lines, multiline("postcreate", rec.PostCreate)...)
	for _, g := range rec.Groups {
		lines = append(lines, assign("group."+g, enabled))
	}
	for _, v := range rec.Variables {
		lines = append(lines, assign("var."+v.Name, v.Value))
	}
	return lines
}

func assign(key, value string) string {
	return key + " = " + value
}

// multiline splits value into a key line and indented continuation lines.
func multiline(key, value string) []string {
	parts := strings.Split(value, "\n")
	lines := make([]string, 0, len(parts))
	lines = append(lines, assign(key, parts[0]))
	for _, p := range parts[1:] {
		p = strings.TrimLeft(p, " \t")
		if p == "" {
			continue
		}
		lines = append(lines, continuationIndent+p)
	}
	return lines
}

func comment(s string) string {
	if s == "" {
		return "#"
	}
	return "# " + s
}
