// Image decode (spec.md §6's Textures/Images/Image path and PNG output
// codec) - PNG/JPEG via stdlib, BMP via golang.org/x/image/bmp (SPEC_FULL.md
// DOMAIN STACK; grounded on gazed-vu and other_examples' use of x/image for
// non-stdlib decode formats). Grounded on the teacher's pkg/loaders/image.go
// image.Decode auto-detection shape, extended with the BMP codec and
// rterr.ResourceError wrapping (spec.md §7).
package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/rterr"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG, or BMP image and converts it to a linear
// Vec3 color array, suitable for wrapping in a texture.ImageTexture.
func LoadImage(filename string) (*ImageData, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, rterr.NewResourceError(filename, err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG/BMP from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, rterr.NewResourceError(filename, err)
	}

	// Convert to Vec3 array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
