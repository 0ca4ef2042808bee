package audio

import "math"

// Cue identifies a procedurally generated sound.
type Cue int

const (
	CueTitle Cue = iota
	CueEvents
	CueFinal
	CueSwell
)

func (c Cue) String() string {
	switch c {
	case CueTitle:
		return "title"
	case CueEvents:
		return "events"
	case CueFinal:
		return "final"
	case CueSwell:
		return "swell"
	}
	return "unknown"
}

// Generate renders a cue as interleaved stereo float32 LE samples.
func Generate(c Cue, sampleRate int) []byte {
	sr := float64(sampleRate)
	switch c {
	case CueTitle:
		// Rising A major arpeggio.
		return arpeggio([]float64{440, 554.37, 659.25, 880}, 0.08, 0.3, sr)
	case CueEvents:
		return blip(sr)
	case CueFinal:
		return arpeggio([]float64{659.25, 880, 1108.73, 1318.51}, 0.06, 0.45, sr)
	case CueSwell:
		return swell(sr)
	}
	return nil
}

func arpeggio(notes []float64, step, tail, sr float64) []byte {
	noteStep := int(step * sr)
	total := len(notes)*noteStep + int(tail*sr)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / sr
			env := adsr(float64(j)/float64(dur), 0.003, 0.6, 0.05, 0.3)
			s := fm(t, freq, 3.5, 4*env) * env * 0.22
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.05
			mix[start+j] += s
		}
	}
	return render(mix)
}

// blip is a short downward chirp, one per event chip row.
func blip(sr float64) []byte {
	n := int(0.07 * sr)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / sr
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0, 0.1)
		mix[i] = fm(t, 1400-600*p, 1, 0.6) * env * 0.3
	}
	return render(mix)
}

// swell is a slow low pad with a little noise shimmer, played as the
// intro fades out.
func swell(sr float64) []byte {
	n := int(1.6 * sr)
	mix := make([]float64, n)
	seed := uint64(0x5eed)
	for i := range mix {
		t := float64(i) / sr
		p := float64(i) / float64(n)
		env := adsr(p, 0.45, 0.2, 0.6, 0.35)
		s := fm(t, 55, 2, 1.2*env) * 0.35
		s += math.Sin(2*math.Pi*110*t) * 0.2
		s += math.Sin(2*math.Pi*164.81*t) * 0.1
		s += lcg(&seed) * 0.02 * p
		mix[i] = s * env
	}
	return render(mix)
}

func render(mix []float64) []byte {
	buf := make([]byte, len(mix)*8)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < 2; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat saturates gently instead of clipping.
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

// adsr returns an envelope at normalized progress [0,1]. attack, decay and
// release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1 - (progress-attack)/decay*(1-sustain)
	case progress < 1-release:
		return sustain
	default:
		return sustain * (1 - (progress-(1-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}
