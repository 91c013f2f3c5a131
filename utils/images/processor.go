// Package images provides upload processing for logo and preview images
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
)

// ImageProcessor handles uploaded image files under the uploads root.
type ImageProcessor struct {
	basePath string
}

// NewImageProcessor creates a new ImageProcessor instance
func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{basePath: basePath}
}

// binary raster formats accepted for preview uploads
var rasterExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// logo uploads additionally accept SVG
var logoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// ValidPreviewExtension reports whether the filename carries an
// accepted preview image extension.
func ValidPreviewExtension(filename string) bool {
	return rasterExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ValidLogoExtension reports whether the filename carries an accepted
// logo image extension.
func ValidLogoExtension(filename string) bool {
	return logoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SaveUpload writes an uploaded image into <base>/<subdir> under a
// unique ULID filename, preserving the original extension. Returns the
// /uploads-relative URL path for serving.
func (p *ImageProcessor) SaveUpload(r io.Reader, originalName, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		return "", fmt.Errorf("missing file extension")
	}

	targetDir := filepath.Join(p.basePath, subdir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := ulid.Make().String() + ext
	fullPath := filepath.Join(targetDir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	urlPath := "/uploads/" + subdir + "/" + filename
	return urlPath, nil
}

// GenerateWebPThumbnail creates a resized WebP rendition next to the
// original, named <base>_<width>px.webp. SVG and GIF uploads are
// returned as-is: there is nothing sensible to rasterize server-side.
func (p *ImageProcessor) GenerateWebPThumbnail(urlPath string, width int) (string, error) {
	ext := strings.ToLower(filepath.Ext(urlPath))
	if ext == ".svg" || ext == ".gif" {
		return urlPath, nil
	}

	diskPath := filepath.Join(p.basePath, strings.TrimPrefix(urlPath, "/uploads/"))
	file, err := os.Open(diskPath)
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	thumbName := strings.TrimSuffix(filepath.Base(diskPath), ext) + fmt.Sprintf("_%dpx.webp", width)
	thumbPath := filepath.Join(filepath.Dir(diskPath), thumbName)
	if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to save WebP thumbnail: %w", err)
	}

	thumbURL := strings.TrimSuffix(urlPath, filepath.Base(urlPath)) + thumbName
	return thumbURL, nil
}

// RemoveUploadWithThumbs deletes an uploaded file and any generated
// WebP renditions. Missing files are ignored.
func (p *ImageProcessor) RemoveUploadWithThumbs(urlPath string) {
	if urlPath == "" || !strings.HasPrefix(urlPath, "/uploads/") {
		return
	}
	diskPath := filepath.Join(p.basePath, strings.TrimPrefix(urlPath, "/uploads/"))
	os.Remove(diskPath)

	ext := filepath.Ext(diskPath)
	base := strings.TrimSuffix(diskPath, ext)
	matches, err := filepath.Glob(base + "_*px.webp")
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}
