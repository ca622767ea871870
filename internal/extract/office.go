package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// docxText pulls paragraph text out of the main document part of a .docx.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("open document part: %w", err)
			}
			defer rc.Close()
			return ooxmlText(rc)
		}
	}
	return "", fmt.Errorf("docx missing word/document.xml")
}

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// pptxText concatenates slide text in slide order.
func pptxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}
	defer zr.Close()

	type slide struct {
		n    int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		m := slidePart.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slide{n: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	var b strings.Builder
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return "", fmt.Errorf("open slide %d: %w", s.n, err)
		}
		text, err := ooxmlText(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", s.n, err)
		}
		fmt.Fprintf(&b, "=== Slide %d ===\n", s.n)
		if text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// ooxmlText walks an OOXML part and reassembles its text: one line per
// paragraph, table rows rendered as their cells joined with " | ". The
// same element names cover WordprocessingML (w:t/w:p/w:tc) and
// DrawingML (a:t/a:p/a:tc) parts.
func ooxmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		doc    strings.Builder
		para   strings.Builder
		cell   strings.Builder
		row    []string
		inRun  bool
		inCell int
	)
	endParagraph := func() {
		text := strings.TrimSpace(para.String())
		para.Reset()
		if text == "" {
			return
		}
		if inCell > 0 {
			if cell.Len() > 0 {
				cell.WriteByte(' ')
			}
			cell.WriteString(text)
			return
		}
		doc.WriteString(text)
		doc.WriteByte('\n')
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode part: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "br", "tab":
				para.WriteByte(' ')
			case "tc":
				inCell++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				endParagraph()
			case "tc":
				inCell--
				row = append(row, cell.String())
				cell.Reset()
			case "tr":
				joined := strings.Join(row, " | ")
				row = nil
				if strings.TrimSpace(strings.Trim(joined, " |")) != "" {
					doc.WriteString(joined)
					doc.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inRun {
				para.Write(t)
			}
		}
	}
	endParagraph()
	return strings.TrimSpace(doc.String()), nil
}
