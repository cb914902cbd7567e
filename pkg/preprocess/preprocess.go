package preprocess

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var log = logrus.StandardLogger().WithField("package", "preprocess")

// Profile selects the preprocessing applied to an image before text
// recognition.
type Profile string

const (
	// ProfileContrast converts to grayscale and boosts contrast and
	// sharpness.
	ProfileContrast Profile = "contrast"
	// ProfileDenoise converts to grayscale, applies non-local-means
	// denoising and an Otsu binary threshold. Requires OpenCV.
	ProfileDenoise Profile = "denoise"
)

// Process prepares raw image bytes for text recognition and returns the
// processed image encoded as PNG. Preprocessing is best-effort: if the image
// cannot be decoded or any enhancement step fails, the original bytes are
// returned unmodified so the pipeline can continue with the raw input.
func Process(data []byte, profile Profile) []byte {
	var out []byte
	var err error
	switch profile {
	case ProfileDenoise:
		out, err = denoise(data)
	default:
		out, err = contrast(data)
	}
	if err != nil {
		log.Warnf("unable to preprocess image: %v", err)
		return data
	}
	return out
}

func contrast(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(img)
	// Roughly a 1.5x contrast boost followed by a strong sharpen.
	enhanced := imaging.AdjustContrast(gray, 50)
	enhanced = imaging.Sharpen(enhanced, 2.0)

	buf := bytes.NewBuffer(nil)
	if err := imaging.Encode(buf, enhanced, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func denoise(data []byte) ([]byte, error) {
	src, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if src.Empty() {
		return nil, fmt.Errorf("unable to decode image")
	}

	denoised := gocv.NewMat()
	defer denoised.Close()
	gocv.FastNlMeansDenoising(src, &denoised)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(denoised, &binary, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, binary)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
