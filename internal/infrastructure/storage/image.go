package storage

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// MaxImageSize is 10MB in bytes.
const MaxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ValidateImage checks size and sniffs the content type of an uploaded
// listing image. The client supplied Content-Type is ignored.
func ValidateImage(header *multipart.FileHeader) (contentType string, err error) {
	if header.Size > MaxImageSize {
		return "", fmt.Errorf("image exceeds %d MB: %w", MaxImageSize/(1024*1024), domain.ErrValidation)
	}

	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(io.LimitReader(f, 3072))
	if err != nil {
		return "", fmt.Errorf("detect image type: %w", err)
	}
	if _, ok := allowedImageTypes[mt.String()]; !ok {
		return "", fmt.Errorf("only PNG and JPEG images are allowed, got %s: %w", mt.String(), domain.ErrValidation)
	}
	return mt.String(), nil
}

func extensionFor(contentType string) string {
	if ext, ok := allowedImageTypes[contentType]; ok {
		return ext
	}
	return ""
}
