package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"scan.jpeg", true},
		{"scan.jpg", true},
		{"scan.tif", true},
		{"scan.tiff", true},
		{"logo.svg", true},
		{"doc.pdf", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsSupportedFormat(tt.path); got != tt.want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 30), 0, 0, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if layer.Width() != 8 || layer.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", layer.Width(), layer.Height())
	}
	if layer.Source() != layer.Image {
		t.Error("Source should return the original before enhancement")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/image.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20">` +
		`<rect x="0" y="0" width="20" height="20" fill="black"/></svg>`
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}

	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if layer.Width() != 40 || layer.Height() != 20 {
		t.Errorf("size = %dx%d, want 40x20", layer.Width(), layer.Height())
	}
}
