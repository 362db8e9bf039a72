package sound

// Pool plays a fixed set of clips in rotation, so rapid triggers alternate
// between variants instead of restarting the same one.
type Pool struct {
	reg    *Registry
	clips  []Clip
	next   int
	volume float64
}

// NewPool creates a pool that plays through reg. Nil clips are skipped.
func NewPool(reg *Registry, volume float64, clips ...Clip) *Pool {
	p := &Pool{reg: reg, volume: volume}
	for _, c := range clips {
		if c != nil {
			p.clips = append(p.clips, c)
		}
	}
	return p
}

// Play starts the next clip in the rotation.
func (p *Pool) Play() {
	if len(p.clips) == 0 {
		return
	}
	clip := p.clips[p.next%len(p.clips)]
	p.next++
	p.reg.PlayClone(clip, p.volume)
}

// Len returns the number of clips in the rotation.
func (p *Pool) Len() int {
	return len(p.clips)
}
