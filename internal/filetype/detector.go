// Package filetype detects input document types from magic bytes, not
// filenames. PDFs pass straight through the pipeline; office formats need a
// LibreOffice conversion first; everything else is rejected.
package filetype

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Info describes a detected input file.
type Info struct {
	MIMEType        string
	Extension       string
	Supported       bool
	NeedsConversion bool
	Description     string
}

// convertible maps MIME types that LibreOffice can turn into a PDF.
var convertible = map[string]string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "Microsoft Word document",
	"application/msword":                      "Microsoft Word document (legacy)",
	"application/vnd.oasis.opendocument.text": "OpenDocument text",
	"application/rtf":                         "Rich Text Format",
}

// zipOverrides resolves ZIP/OLE containers to office MIME types by extension;
// magic bytes alone cannot tell a .docx from a plain archive.
var zipOverrides = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".odt":  "application/vnd.oasis.opendocument.text",
}

var oleOverrides = map[string]string{
	".doc": "application/msword",
}

// Detect inspects the file at path and classifies it for the pipeline.
func Detect(path string) (*Info, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect file type: %w", err)
	}

	mimeType := mtype.String()
	ext := strings.ToLower(filepath.Ext(path))

	if mimeType == "application/zip" || strings.Contains(mimeType, "application/x-zip") {
		if override, ok := zipOverrides[ext]; ok {
			mimeType = override
		}
	}
	if mimeType == "application/x-ole-storage" || mimeType == "application/x-cfb" {
		if override, ok := oleOverrides[ext]; ok {
			mimeType = override
		}
	}

	log.Debug().Str("mime", mimeType).Str("file", path).Msg("detected file type")

	info := &Info{MIMEType: mimeType, Extension: mtype.Extension()}
	switch {
	case mimeType == "application/pdf":
		info.Supported = true
		info.Description = "PDF document"
	default:
		if desc, ok := convertible[mimeType]; ok {
			info.Supported = true
			info.NeedsConversion = true
			info.Description = desc
		} else {
			info.Description = fmt.Sprintf("unsupported file type: %s", mimeType)
		}
	}

	return info, nil
}
