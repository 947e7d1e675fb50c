package audioconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownmixAveragesChannels(t *testing.T) {
	stereo := []float32{1, 0, 0.5, 0.5, -1, 1}
	mono := downmix(stereo, 2)
	assert.Equal(t, []float32{0.5, 0.5, 0}, mono)
}

func TestDownmixMonoPassthrough(t *testing.T) {
	in := []float32{0.1, 0.2}
	assert.Equal(t, in, downmix(in, 1))
}

func TestResampleHalvesRate(t *testing.T) {
	in := make([]float32, 32000)
	out := resampleLinear(in, 32000, 16000)
	assert.Len(t, out, 16000)
}

func TestResampleSameRatePassthrough(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	assert.Equal(t, in, resampleLinear(in, 16000, 16000))
}

func TestIntSliceToFloat32Clamps(t *testing.T) {
	out := intSliceToFloat32([]int{32767, -32768, 0}, 16)
	assert.InDelta(t, 1.0, out[0], 0.001)
	assert.InDelta(t, -1.0, out[1], 0.001)
	assert.Zero(t, out[2])
}

func TestConvertFileRejectsUnknownFormat(t *testing.T) {
	_, err := ConvertFile("testdata/does-not-exist.xyz", Options{})
	assert.Error(t, err)
}
