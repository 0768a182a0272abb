package docxtable

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

const (
	mainDocumentPart = "word/document.xml"
	stylesRelType    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// DocxReader handles reading the parts of a DOCX package
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	// Check if this is a valid DOCX file by looking for required parts
	if _, ok := dr.Parts[mainDocumentPart]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", mainDocumentPart)
	}

	return dr, nil
}

// DocxReaderFromFile creates a DocxReader from a file path
func DocxReaderFromFile(path string) (*DocxReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// ListParts returns the part names in archive order
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.reader.File))
	for _, file := range dr.reader.File {
		parts = append(parts, file.Name)
	}
	return parts
}

// GetRelationships retrieves relationships for a given part
func (dr *DocxReader) GetRelationships(partName string) ([]Relationship, error) {
	// e.g., "word/document.xml" -> "word/_rels/document.xml.rels"
	dir, base := path.Split(partName)
	relPath := dir + "_rels/" + base + ".rels"

	if _, ok := dr.Parts[relPath]; !ok {
		// Missing relationships file is not an error, just return empty
		return []Relationship{}, nil
	}

	content, err := dr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}

	return rels.Relationship, nil
}

// StylesPart returns the name of the styles part related to the main
// document, or "" when the package has none
func (dr *DocxReader) StylesPart() (string, error) {
	rels, err := dr.GetRelationships(mainDocumentPart)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type != stylesRelType || rel.TargetMode == "External" {
			continue
		}
		target := rel.Target
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join(path.Dir(mainDocumentPart), target)
		}
		if _, ok := dr.Parts[target]; ok {
			return target, nil
		}
	}
	return "", nil
}

// writePackage copies every part of the source package to w, replacing the
// parts present in overrides. Untouched parts are copied without
// recompression.
func (dr *DocxReader) writePackage(w io.Writer, overrides map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, file := range dr.reader.File {
		content, replaced := overrides[file.Name]
		if !replaced {
			if err := copyRawPart(zw, file); err != nil {
				return err
			}
			continue
		}

		header := &zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write part %s: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize package: %w", err)
	}
	return nil
}

func copyRawPart(zw *zip.Writer, file *zip.File) error {
	header := file.FileHeader
	fw, err := zw.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", file.Name, err)
	}
	rc, err := file.OpenRaw()
	if err != nil {
		return fmt.Errorf("failed to open part %s: %w", file.Name, err)
	}
	if _, err := io.Copy(fw, rc); err != nil {
		return fmt.Errorf("failed to copy part %s: %w", file.Name, err)
	}
	return nil
}
