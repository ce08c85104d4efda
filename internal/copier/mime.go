package copier

import (
	"mime"
	"path"
	"strings"

	"github.com/h2non/filetype"
)

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMEWebP = "image/webp"
)

var aliases = map[string]string{
	"image/jpg":   MIMEJPEG,
	"image/pjpeg": MIMEJPEG,
	"image/x-png": MIMEPNG,
}

var extMIME = map[string]string{
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
	".gif":  MIMEGIF,
	".webp": MIMEWebP,
}

// InferMIME maps a file name to the clipboard type declared for it. Anything
// not jpg/jpeg/gif/webp is declared as png.
func InferMIME(name string) string {
	if t, ok := extMIME[strings.ToLower(path.Ext(name))]; ok {
		return t
	}
	return MIMEPNG
}

// blobType resolves the type of fetched bytes: the transport's Content-Type
// when it names something specific, otherwise a sniff of the leading bytes.
func blobType(contentType string, data []byte) string {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			mt = strings.ToLower(mt)
			if alias, ok := aliases[mt]; ok {
				return alias
			}
			if mt != "application/octet-stream" && mt != "binary/octet-stream" {
				return mt
			}
		}
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}
