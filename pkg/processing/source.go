package processing

import (
	"fmt"
	"image"
	"sync"

	"github.com/menta2k/gemini-analyzer/assets"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// Defaults for the image sent to the model
const (
	DefaultSendFormat  = "jpg"
	DefaultSendSize    = 0
	DefaultSendQuality = 80
	MinImageSize       = 1
)

// SourceOptions controls how the source image is encoded
type SourceOptions struct {
	Format  string
	MaxDim  int
	Quality int
}

// DefaultSourceOptions encodes the original size as JPEG quality 80
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Format:  DefaultSendFormat,
		MaxDim:  DefaultSendSize,
		Quality: DefaultSendQuality,
	}
}

// Source supplies one fixed image. It is decoded and encoded on first use and
// the result is reused for the lifetime of the Source.
type Source struct {
	load func() (loaded, error)
}

type loaded struct {
	blob types.Blob
	img  image.Image
}

// NewSource loads from a file path or http(s) URL
func NewSource(p *Processor, location string, opts SourceOptions) *Source {
	return newSource(p, func() (image.Image, error) {
		return p.LoadImageSmart(location)
	}, opts)
}

// NewBundledSource loads the image embedded in the binary
func NewBundledSource(p *Processor, opts SourceOptions) *Source {
	return newSource(p, func() (image.Image, error) {
		return p.DecodeBytes(assets.Image)
	}, opts)
}

// NewImageSource serves an already decoded image
func NewImageSource(p *Processor, img image.Image, opts SourceOptions) *Source {
	return newSource(p, func() (image.Image, error) { return img, nil }, opts)
}

func newSource(p *Processor, decode func() (image.Image, error), opts SourceOptions) *Source {
	return &Source{
		load: sync.OnceValues(func() (loaded, error) {
			img, err := decode()
			if err != nil {
				return loaded{}, fmt.Errorf("failed to load image: %w", err)
			}
			if err := p.ValidateImage(img, MinImageSize); err != nil {
				return loaded{}, fmt.Errorf("image validation failed: %w", err)
			}
			blob, err := p.PrepareImageForModel(img, opts.Format, opts.MaxDim, opts.Quality)
			if err != nil {
				return loaded{}, fmt.Errorf("failed to encode image: %w", err)
			}
			return loaded{blob: blob, img: img}, nil
		}),
	}
}

// Blob returns the encoded image sent to the model
func (s *Source) Blob() (types.Blob, error) {
	l, err := s.load()
	return l.blob, err
}

// Image returns the decoded image, for display
func (s *Source) Image() (image.Image, error) {
	l, err := s.load()
	return l.img, err
}
