package media

import "net/http"

const PNG = "image/png"

var mimes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"tiff": "image/tiff",
}

func GuessMimeFromExtension(ext string) string {
	if m, ok := mimes[ext]; ok {
		return m
	}

	return "application/octet-stream"
}

// SniffMime falls back to content sniffing when the upload carries no usable
// Content-Type header.
func SniffMime(content []byte) string {
	if len(content) == 0 {
		return "application/octet-stream"
	}

	n := len(content)
	if n > 512 {
		n = 512
	}

	return http.DetectContentType(content[:n])
}
