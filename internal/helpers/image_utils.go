package helpers

// isJPEGData checks if the byte slice contains JPEG data by checking magic bytes
func isJPEGData(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	// JPEG magic bytes: FF D8
	return data[0] == 0xFF && data[1] == 0xD8
}

// isPNGData checks for the 8 byte PNG signature
func isPNGData(data []byte) bool {
	sig := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if len(data) < len(sig) {
		return false
	}
	for i, b := range sig {
		if data[i] != b {
			return false
		}
	}
	return true
}

// ImageContentType sniffs the encoded image format of a cached frame
func ImageContentType(data []byte) string {
	switch {
	case isJPEGData(data):
		return "image/jpeg"
	case isPNGData(data):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
