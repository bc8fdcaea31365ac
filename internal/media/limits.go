package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/learnhub-dev/learnhub/internal/apperr"
)

const (
	MaxImageSize = 1 << 20   // 1MB
	MaxVideoSize = 100 << 20 // 100MB
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true,
}

// ReadImage pulls the named multipart field, enforcing the image size and
// type allow-list.
func ReadImage(r *http.Request, field string) (string, []byte, error) {
	return readFile(r, field, MaxImageSize, func(name, contentType string) bool {
		return imageExts[strings.ToLower(filepath.Ext(name))] || strings.HasPrefix(contentType, "image/")
	}, "unsupported file format, image expected")
}

// ReadVideo pulls the named multipart field, enforcing the video size and
// extension allow-list.
func ReadVideo(r *http.Request, field string) (string, []byte, error) {
	return readFile(r, field, MaxVideoSize, func(name, contentType string) bool {
		return videoExts[strings.ToLower(filepath.Ext(name))]
	}, "only video files are allowed")
}

func readFile(r *http.Request, field string, maxSize int64, allowed func(name, contentType string) bool, typeMsg string) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return "", nil, apperr.Validation("no file provided")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, apperr.Validation("no file provided")
	}
	defer file.Close()

	if header.Size > maxSize {
		return "", nil, apperr.Validation("file exceeds the allowed size")
	}
	if !allowed(header.Filename, header.Header.Get("Content-Type")) {
		return "", nil, apperr.Validation(typeMsg)
	}

	content, err := readAll(file, maxSize)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}

func readAll(file multipart.File, maxSize int64) ([]byte, error) {
	buf := make([]byte, 0, 64<<10)
	chunk := make([]byte, 32<<10)
	for {
		n, err := file.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if int64(len(buf)) > maxSize {
			return nil, apperr.Validation("file exceeds the allowed size")
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return nil, apperr.Validation("could not read uploaded file")
		}
	}
}
