package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/draw"
)

// GenerateImageHash fingerprints the pixels of img independent of its origin.
func GenerateImageHash(img image.Image) (string, error) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	hasher := sha256.New()
	for y := 0; y < rgba.Rect.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rgba.Rect.Dx()*4]
		hasher.Write(row)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
