package utils

// Float32ToInt16 clamps x to [-1, 1] and scales to signed 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32ToInt32 clamps x to [-1, 1] and scales to signed 32-bit PCM.
func Float32ToInt32(x float32) int32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int32(float64(x) * 2147483647.0)
}

// Float32ToUint8 clamps x to [-1, 1] and maps to unsigned 8-bit PCM,
// which is what the WAV format uses at that depth (silence = 128).
func Float32ToUint8(x float32) uint8 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return uint8((x + 1) * 127.5)
}
