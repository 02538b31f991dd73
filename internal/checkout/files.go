package checkout

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/safar/artisan-market/internal/models"
)

const (
	MaxFilesPerItem = 3
	MaxFileSize     = 25 << 20
)

var (
	ErrTooManyFiles    = errors.New("too many customization files")
	ErrFileTooLarge    = errors.New("customization file too large")
	ErrUnsupportedFile = errors.New("customization file must be an image or a PDF")
	ErrNotInCart       = errors.New("product is not in the cart")
)

func validateFiles(productID int64, files []models.CustomizationFile) error {
	if len(files) > MaxFilesPerItem {
		return fmt.Errorf("%w: product %d has %d, max %d", ErrTooManyFiles, productID, len(files), MaxFilesPerItem)
	}
	for _, f := range files {
		if f.Size > MaxFileSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
		}
		if !acceptedType(f) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Name)
		}
	}
	return nil
}

func acceptedType(f models.CustomizationFile) bool {
	contentType := f.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}
