package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileTypeInvalid = errors.New("invalid file type")
)

// FileConstraints restricts a single upload by sniffed type, extension and size.
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// AvatarConstraints applies to profile pictures. Intake documents are not
// checked beyond being present.
var AvatarConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 5 << 20,
}

// ValidateFile sniffs the first 512 bytes so a renamed file cannot pass.
func ValidateFile(header *multipart.FileHeader, c FileConstraints) error {
	if header.Size > c.MaxSize {
		return fmt.Errorf("%w: maximum size is %d MB", ErrFileTooLarge, c.MaxSize/(1<<20))
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	detected := http.DetectContentType(buffer[:n])
	if !c.AllowedMimeTypes[detected] {
		return fmt.Errorf("%w (detected: %s)", ErrFileTypeInvalid, detected)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !c.AllowedExtensions[ext] {
		return fmt.Errorf("%w: extension %s", ErrFileTypeInvalid, ext)
	}

	return nil
}
