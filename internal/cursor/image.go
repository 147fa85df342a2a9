package cursor

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// SaveImage writes the cursor's pixel bytes to a PNG file unchanged, so that LoadImage of the
// same file hashes to the same digest.
func SaveImage(path string, d Descriptor) error {
	img := &image.NRGBA{
		Pix:    d.Pixels,
		Stride: d.Size.Width * 4,
		Rect:   image.Rect(0, 0, d.Size.Width, d.Size.Height),
	}
	if len(d.Pixels) != d.Size.Width*d.Size.Height*4 {
		return fmt.Errorf("cursor %s has %d pixel bytes", d.Size, len(d.Pixels))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// LoadImage reads a reference cursor image. 8-bit RGBA PNGs, as written by SaveImage, keep
// their bytes; other images are converted to premultiplied RGBA.
func LoadImage(path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return Descriptor{}, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	size := Size{Width: b.Dx(), Height: b.Dy()}
	pixels := make([]byte, 0, size.Width*size.Height*4)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			pixels = append(pixels, src.Pix[i:i+size.Width*4]...)
		}
	default:
		dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		pixels = append(pixels, dst.Pix...)
	}

	return Descriptor{Size: size, Pixels: pixels}, nil
}
