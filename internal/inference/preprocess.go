package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PrepareInput resizes an image to the model input resolution and writes it
// into dst as planar CHW float32 data normalized to [0, 1].
func PrepareInput(img image.Image, dst []float32) error {
	channelSize := InputSize * InputSize
	if len(dst) < channelSize*3 {
		return errors.Errorf("input tensor holds %d floats, needs %d", len(dst), channelSize*3)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	img = resize.Resize(InputSize, InputSize, img, resize.Lanczos3)

	i := 0
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
