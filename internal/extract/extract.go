package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormat is stored as the extracted text when a file cannot be
// processed. Uploads never fail on format; the marker makes the failure
// visible in stored data instead.
const UnsupportedFormat = "Unsupported file format"

// Text extracts plain text from a resume payload, dispatching on the file
// extension (case-insensitive). Only .pdf and .docx are recognized; anything
// else, including corrupt files, yields UnsupportedFormat.
func Text(ctx context.Context, fileName string, data []byte) string {
	if err := ctx.Err(); err != nil {
		return UnsupportedFormat
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return UnsupportedFormat
		}
		return text
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return UnsupportedFormat
		}
		return text
	default:
		return UnsupportedFormat
	}
}

// extractPDF concatenates each page's text layer in page order, separated by
// newlines. Library: github.com/ledongthuc/pdf.
func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return strings.TrimSpace(buf.String()), nil
}

// extractDOCX reads word/document.xml from the zip container and joins
// paragraph text with newlines.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return paragraphText(raw)
}

// paragraphText walks the WordprocessingML token stream collecting character
// data; paragraph and line-break ends emit a newline.
func paragraphText(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
