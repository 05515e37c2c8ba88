package core

// CopyChannels copies each src channel into the matching dst channel and
// returns the number of samples copied per channel. Extra channels on either
// side are left untouched.
func CopyChannels(dst, src [][]float64) int {
	n := 0
	for ch := 0; ch < len(dst) && ch < len(src); ch++ {
		n = copy(dst[ch], src[ch])
	}
	return n
}
