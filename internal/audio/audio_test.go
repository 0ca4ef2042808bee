package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func sample(buf []byte, i, ch int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+ch*4:]))
}

func TestGenerateCues(t *testing.T) {
	for _, c := range []Cue{CueTitle, CueEvents, CueFinal, CueSwell} {
		t.Run(c.String(), func(t *testing.T) {
			buf := Generate(c, 44100)
			require.NotEmpty(t, buf)
			require.Zero(t, len(buf)%8)

			peak := 0.0
			for i := 0; i < len(buf)/8; i++ {
				l, r := sample(buf, i, 0), sample(buf, i, 1)
				require.Equal(t, l, r, "mono cue on both channels")
				require.False(t, math.IsNaN(float64(l)))
				peak = math.Max(peak, math.Abs(float64(l)))
			}
			assert.LessOrEqual(t, peak, 1.0)
			assert.Greater(t, peak, 0.01, "audible")
		})
	}
	assert.Nil(t, Generate(Cue(42), 44100))
}

func TestSwellIsLongest(t *testing.T) {
	swell := len(Generate(CueSwell, 44100))
	for _, c := range []Cue{CueTitle, CueEvents, CueFinal} {
		assert.Greater(t, swell, len(Generate(c, 44100)), c.String())
	}
}

func TestSoftSatBounded(t *testing.T) {
	for _, x := range []float64{-10, -1.5, -1, 0, 0.5, 1, 3, 100} {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0, "x=%v", x)
	}
	assert.Zero(t, softSat(0))
}

func TestADSR(t *testing.T) {
	assert.Zero(t, adsr(0, 0.1, 0.2, 0.5, 0.2))
	assert.InDelta(t, 1, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0, adsr(1, 0.1, 0.2, 0.5, 0.2), 1e-9)
}

func TestSilentPlayerDropsCues(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := New(Options{Enabled: false, SampleRate: 44100, Volume: 0.5})
	require.True(t, p.Silent())
	p.Play(CueTitle)
	p.Play(CueSwell)
	p.Close()
	p.Close()
}

func TestSoundReaderDrains(t *testing.T) {
	data := Generate(CueEvents, 8000)
	got, err := io.ReadAll(&soundReader{data: data})
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
