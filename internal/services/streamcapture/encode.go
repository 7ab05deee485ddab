package streamcapture

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

const (
	// JPEG quality settings
	HighQuality = 95

	// PNG compression level (0-9)
	DefaultPNGCompression = 3
)

// encodeFrame encodes a decoded frame for the given file extension (".png", ".jpg").
func encodeFrame(img gocv.Mat, ext string) ([]byte, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	var fileExt gocv.FileExt
	var params []int
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		fileExt = gocv.JPEGFileExt
		params = []int{gocv.IMWriteJpegQuality, HighQuality}
	case ".png":
		fileExt = gocv.PNGFileExt
		params = []int{gocv.IMWritePngCompression, DefaultPNGCompression}
	default:
		return nil, fmt.Errorf("unsupported frame image type %q", ext)
	}

	buf, err := gocv.IMEncodeWithParams(fileExt, img, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame as %s: %w", ext, err)
	}
	defer buf.Close()

	// GetBytes points into native memory released by Close
	return append([]byte(nil), buf.GetBytes()...), nil
}
