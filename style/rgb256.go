package style

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

// cubeLevel maps 0-255 to the nearest cube level 0-5
func cubeLevel(v uint8) int {
	best, bestDist := 0, 256
	for i, cv := range cubeValues {
		if d := absInt(int(v) - cv); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// To256 returns the nearest xterm-256 palette index
// Near-gray colors also try the grayscale ramp
func To256(c Color) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeLevel(c.R), cubeLevel(c.G), cubeLevel(c.B)
	cube := uint8(16 + 36*cr + 6*cg + cb)

	gray := (r + g + b) / 3
	if max(absInt(r-gray), absInt(g-gray), absInt(b-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	step := (gray - 8) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	level := 8 + step*10
	grayDist := absInt(r-level) + absInt(g-level) + absInt(b-level)
	cubeDist := absInt(r-cubeValues[cr]) + absInt(g-cubeValues[cg]) + absInt(b-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayscaleStart + step)
	}
	return cube
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
