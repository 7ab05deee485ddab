package streamcapture

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"wazp-annotator/internal/helpers"
)

func TestEncodeFrame(t *testing.T) {
	img := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC3)
	defer img.Close()

	png, err := encodeFrame(img, ".png")
	require.NoError(t, err)
	require.Equal(t, "image/png", helpers.ImageContentType(png))

	jpg, err := encodeFrame(img, ".JPG")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", helpers.ImageContentType(jpg))

	_, err = encodeFrame(img, ".gif")
	require.Error(t, err)

	empty := gocv.NewMat()
	defer empty.Close()
	_, err = encodeFrame(empty, ".png")
	require.Error(t, err)
}
