package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// extractDOCX reads the WordprocessingML body out of a DOCX archive. A DOCX
// file is a zip; the document text lives in word/document.xml as <w:t> runs
// grouped into <w:p> paragraphs.
func extractDOCX(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &FormatError{Format: "DOCX", Err: err}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &FormatError{Format: "DOCX", Err: err}
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", &FormatError{Format: "DOCX", Err: errors.New("word/document.xml not found")}
	}

	rc, err := document.Open()
	if err != nil {
		return "", &FormatError{Format: "DOCX", Err: err}
	}
	defer rc.Close()

	text, err := documentXMLText(rc)
	if err != nil {
		return "", &FormatError{Format: "DOCX", Err: err}
	}

	return text, nil
}

// documentXMLText collects text runs, inserting a newline after every paragraph.
func documentXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return strings.TrimSpace(builder.String()), nil
}
