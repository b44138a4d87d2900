package constants

import "strings"

const (
	// DocxMIMEType is the content type served for rendered circulars.
	DocxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// DownloadFilename is the attachment name clients see; the on-disk name is per request.
	DownloadFilename = "event_circular.docx"

	DocxExt = "docx"

	// OutputFilePrefix prefixes per-request render paths: <dir>/circular-<uuid>.docx
	OutputFilePrefix = "circular-"

	DefaultHeaderImagePath = "assets/college_header.png"
)

// HeaderImageExtensions holds the image formats accepted for the circular header.
var HeaderImageExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
