// Package images handles persistence of uploaded photos: content-addressed
// filenames, dimension probing, and preview thumbnails.
package images

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// MaxUploadBytes is the largest accepted photo upload.
const MaxUploadBytes = 10 * 1024 * 1024

const thumbnailWidth = 320

// SavedImage describes a photo written to the uploads directory.
type SavedImage struct {
	Filename      string
	Path          string
	ThumbnailPath string
	Width         int
	Height        int
}

// Save writes photo bytes under dir using an md5 content hash as the
// filename, so a retake of identical bytes is idempotent on disk. It
// probes dimensions and writes a preview thumbnail next to the original;
// both are best-effort and never fail the save.
func Save(dir string, data []byte, originalFilename string) (*SavedImage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%x%s", md5.Sum(data), ext)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	saved := &SavedImage{Filename: filename, Path: path}

	width, height, err := Dimensions(path)
	if err != nil {
		slog.Warn("Failed to get image dimensions", "path", path, "error", err)
	} else {
		saved.Width = width
		saved.Height = height
	}

	thumbPath, err := writeThumbnail(path)
	if err != nil {
		slog.Warn("Failed to write thumbnail", "path", path, "error", err)
	} else {
		saved.ThumbnailPath = thumbPath
	}

	slog.Info("Image saved", "filename", filename, "width", saved.Width, "height", saved.Height)
	return saved, nil
}

// Dimensions returns the pixel size of an image file without decoding it
// fully.
func Dimensions(imagePath string) (int, int, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}

func writeThumbnail(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	ext := filepath.Ext(path)
	thumbPath := path[:len(path)-len(ext)] + "_thumb" + ext
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return thumbPath, nil
}
