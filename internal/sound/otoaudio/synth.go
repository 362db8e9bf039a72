package otoaudio

import (
	"encoding/binary"
	"math"
)

// effects maps a sound name to its synthesizer.
var effects = map[string]func() []byte{
	"thud":   genThud,
	"chomp":  genChomp,
	"yum":    genYum,
	"yuck":   genYuck,
	"flap":   genFlap,
	"hit":    genHit,
	"point":  genPoint,
	"splash": genSplash,
	"squeak": genSqueak,
	"pop":    genPop,
	"snore":  genSnore,
	"giggle": genGiggle,
	"click":  genClick,
	"shiver": genShiver,
	"sizzle": genSizzle,
	"hammer": genHammer,
	"butter": genButter,
	"water":  genWater,
}

// Names returns the sound names Load accepts.
func Names() []string {
	out := make([]string, 0, len(effects))
	for name := range effects {
		out = append(out, name)
	}
	return out
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	binary.LittleEndian.PutUint32(buf[i*frameBytes:], v)
	binary.LittleEndian.PutUint32(buf[i*frameBytes+4:], v)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
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

// sweep renders a single FM note gliding from f0 to f1.
func sweep(dur, f0, f1, ratio, index, gain float64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.5, 0.2, 0.3)
		freq := f0 + (f1-f0)*p
		putStereoF32(buf, i, softSat(fm(t, freq, ratio, index*env)*env*gain))
	}
	return buf
}

// noise renders filtered noise with an exponential decay.
func noise(dur, smooth, decay, gain float64, seed uint64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		lp = lp*smooth + lcg(&seed)*(1-smooth)
		putStereoF32(buf, i, softSat(lp*math.Exp(-p*decay)*gain))
	}
	return buf
}

// notes renders a short arpeggio.
func notes(freqs []float64, step, tail, gain float64) []byte {
	noteLen := int(step * SampleRate)
	total := len(freqs)*noteLen + int(tail*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.005, 0.5, 0.05, 0.4)
			mix[start+j] += fm(t, freq, 2.0, 3.0*env) * env * gain
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func genThud() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.9 + lcg(&seed)*0.1
		body := math.Sin(2*math.Pi*(90-40*p)*t) * math.Exp(-p*9)
		putStereoF32(buf, i, softSat((body*0.8+lp*0.4)*0.8))
	}
	return buf
}

func genChomp() []byte { return noise(0.08, 0.6, 12, 0.9, 777) }

func genYum() []byte { return notes([]float64{523.25, 659.25, 783.99}, 0.07, 0.15, 0.35) }

func genYuck() []byte { return sweep(0.3, 260, 140, 1.5, 4, 0.5) }

func genFlap() []byte { return sweep(0.07, 300, 700, 1.0, 1.5, 0.4) }

func genHit() []byte { return sweep(0.35, 400, 90, 0.5, 5, 0.6) }

func genPoint() []byte { return notes([]float64{880, 1318.5}, 0.06, 0.1, 0.3) }

func genSplash() []byte { return noise(0.4, 0.3, 5, 0.6, 9090) }

func genSqueak() []byte { return sweep(0.12, 1200, 1800, 2.0, 2, 0.3) }

func genPop() []byte { return sweep(0.05, 900, 300, 1.0, 1, 0.5) }

func genSnore() []byte {
	n := int(0.9 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(31337)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.95 + lcg(&seed)*0.05
		rasp := math.Sin(2*math.Pi*70*t) * (0.5 + 0.5*math.Sin(2*math.Pi*28*t))
		env := math.Sin(math.Pi * p)
		putStereoF32(buf, i, softSat((rasp*0.5+lp*2)*env*0.5))
	}
	return buf
}

func genGiggle() []byte { return notes([]float64{784, 988, 784, 988, 1175}, 0.05, 0.1, 0.25) }

func genClick() []byte { return noise(0.015, 0.1, 20, 0.5, 1) }

func genShiver() []byte {
	a := sweep(0.08, 1500, 1300, 3.0, 2, 0.25)
	b := sweep(0.08, 1450, 1250, 3.0, 2, 0.25)
	return append(append(a, b...), a...)
}

func genSizzle() []byte { return noise(0.35, 0.15, 6, 0.45, 4242) }

func genHammer() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(1234)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		clang := fm(t, 620, 1.41, 4*math.Exp(-p*6)) * math.Exp(-p*7)
		putStereoF32(buf, i, softSat((clang*0.6+lcg(&seed)*0.3*math.Exp(-p*30))*0.8))
	}
	return buf
}

func genButter() []byte { return sweep(0.25, 500, 220, 0.5, 1.5, 0.4) }

// genWater is a trickle meant to be looped.
func genWater() []byte {
	n := int(0.6 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(2718)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		lp = lp*0.7 + lcg(&seed)*0.3
		gurgle := 0.6 + 0.4*math.Sin(2*math.Pi*7*t)
		putStereoF32(buf, i, softSat(lp*gurgle*0.5))
	}
	return buf
}
