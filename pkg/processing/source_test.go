package processing

import (
	"bytes"
	"image"
	"image/jpeg"
	"path/filepath"
	"testing"
)

func TestBundledSource(t *testing.T) {
	src := NewBundledSource(NewProcessor(), DefaultSourceOptions())

	blob, err := src.Blob()
	if err != nil {
		t.Fatalf("Blob failed: %v", err)
	}
	if blob.MimeType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", blob.MimeType)
	}
	if _, err := jpeg.Decode(bytes.NewReader(blob.Data)); err != nil {
		t.Errorf("bundled blob is not a JPEG: %v", err)
	}

	img, err := src.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("bundled image is empty")
	}
}

func TestSourceEncodesOnce(t *testing.T) {
	src := NewImageSource(NewProcessor(), createTestImage(40, 30), DefaultSourceOptions())

	first, err := src.Blob()
	if err != nil {
		t.Fatalf("Blob failed: %v", err)
	}
	second, _ := src.Blob()
	if len(first.Data) == 0 || &first.Data[0] != &second.Data[0] {
		t.Error("expected the same encoded buffer on every call")
	}
}

func TestSourceErrorIsSticky(t *testing.T) {
	src := NewSource(NewProcessor(), filepath.Join(t.TempDir(), "missing.png"), DefaultSourceOptions())

	if _, err := src.Blob(); err == nil {
		t.Fatal("Expected error for missing file")
	}
	if _, err := src.Image(); err == nil {
		t.Error("Expected the same error on the second call")
	}
}

func TestSourceRejectsEmptyImage(t *testing.T) {
	src := NewImageSource(NewProcessor(), image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultSourceOptions())
	if _, err := src.Blob(); err == nil {
		t.Error("Expected validation error for empty image")
	}
}
