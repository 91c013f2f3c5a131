package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionValidation(t *testing.T) {
	tests := []struct {
		filename string
		preview  bool
		logo     bool
	}{
		{"photo.jpg", true, true},
		{"photo.JPEG", true, true},
		{"shot.png", true, true},
		{"anim.gif", true, true},
		{"mark.svg", false, true},
		{"doc.pdf", false, false},
		{"noext", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.preview, ValidPreviewExtension(tt.filename))
			assert.Equal(t, tt.logo, ValidLogoExtension(tt.filename))
		})
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveUpload(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	urlPath, err := p.SaveUpload(bytes.NewReader([]byte("data")), "logo.PNG", "logos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(urlPath, "/uploads/logos/"))
	assert.True(t, strings.HasSuffix(urlPath, ".png"))

	diskPath := filepath.Join(p.basePath, strings.TrimPrefix(urlPath, "/uploads/"))
	data, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestSaveUploadRequiresExtension(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	_, err := p.SaveUpload(bytes.NewReader([]byte("data")), "noext", "logos")
	assert.Error(t, err)
}

func TestGenerateWebPThumbnail(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	urlPath, err := p.SaveUpload(bytes.NewReader(pngBytes(t, 1200, 800)), "shot.png", "previews")
	require.NoError(t, err)

	thumbURL, err := p.GenerateWebPThumbnail(urlPath, 600)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(thumbURL, "_600px.webp"))

	thumbPath := filepath.Join(p.basePath, strings.TrimPrefix(thumbURL, "/uploads/"))
	_, err = os.Stat(thumbPath)
	assert.NoError(t, err)
}

func TestGenerateWebPThumbnailSkipsVectorAndAnimated(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	for _, urlPath := range []string{"/uploads/logos/mark.svg", "/uploads/previews/anim.gif"} {
		out, err := p.GenerateWebPThumbnail(urlPath, 600)
		require.NoError(t, err)
		assert.Equal(t, urlPath, out)
	}
}

func TestRemoveUploadWithThumbs(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	urlPath, err := p.SaveUpload(bytes.NewReader(pngBytes(t, 800, 600)), "shot.png", "previews")
	require.NoError(t, err)
	thumbURL, err := p.GenerateWebPThumbnail(urlPath, 600)
	require.NoError(t, err)

	p.RemoveUploadWithThumbs(urlPath)

	for _, u := range []string{urlPath, thumbURL} {
		diskPath := filepath.Join(p.basePath, strings.TrimPrefix(u, "/uploads/"))
		_, err := os.Stat(diskPath)
		assert.True(t, os.IsNotExist(err), u)
	}
}

func TestRemoveUploadIgnoresForeignPaths(t *testing.T) {
	p := NewImageProcessor(t.TempDir())

	// Paths outside the uploads namespace are never touched.
	p.RemoveUploadWithThumbs("")
	p.RemoveUploadWithThumbs("/etc/passwd")
}
