package constants

import "strings"

// DocFormats holds the allowed source formats for notice documents.
var DocFormats = []string{"PDF", "TXT"}

// AllowedExtensions holds the accepted file extensions for notice uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the document format for a file extension, or ""
// when the extension is not supported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "PDF"
	case "txt":
		return "TXT"
	default:
		return ""
	}
}
