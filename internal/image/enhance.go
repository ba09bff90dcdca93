package image

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Enhance runs the optional preprocessing pass on the layer's image:
// grayscale conversion, histogram equalization to spread the tonal range,
// and a light Gaussian denoise so sensor noise does not jitter small hole
// radii. The result is stored on the layer and used for sampling.
func (l *Layer) Enhance() error {
	if l.Image == nil {
		return fmt.Errorf("no image loaded")
	}

	gray, err := imageToGrayMat(l.Image)
	if err != nil {
		return err
	}
	defer gray.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.GaussianBlur(equalized, &smoothed, image.Point{X: 3, Y: 3}, 0, 0, gocv.BorderDefault)

	l.Enhanced = grayMatToImage(smoothed)
	return nil
}

// ClearEnhanced discards the preprocessed variant.
func (l *Layer) ClearEnhanced() {
	l.Enhanced = nil
}

// imageToGrayMat converts a Go image.Image to a single-channel gocv.Mat.
func imageToGrayMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("empty image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			v := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
			mat.SetUCharAt(y, x, uint8(v))
		}
	}
	return mat, nil
}

// grayMatToImage converts a single-channel gocv.Mat back to an image.Gray.
func grayMatToImage(mat gocv.Mat) *image.Gray {
	h, w := mat.Rows(), mat.Cols()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = mat.GetUCharAt(y, x)
		}
	}
	return img
}
