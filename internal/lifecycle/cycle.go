package lifecycle

// Cycle is a child scope that is replaced as a whole, e.g. once per song.
// The parent holds a single entry for it no matter how often it is renewed.
type Cycle struct {
	parent *Scope
	cur    *Scope
}

// Cycle returns a renewable child of s. Releasing s ends the current round.
func (s *Scope) Cycle() *Cycle {
	c := &Cycle{parent: s}
	s.DeferErr(c.End)
	return c
}

// Next ends the current round and returns a fresh scope for the next one.
// On a released parent the returned scope is already dead.
func (c *Cycle) Next() *Scope {
	//nolint:errcheck // Errors were reported by the round's owner
	c.End()
	sc := NewScope(c.parent.host)
	if !c.parent.Alive() {
		//nolint:errcheck // Nothing registered yet
		sc.Release()
		return sc
	}
	c.cur = sc
	return sc
}

// End releases the current round, if any.
func (c *Cycle) End() error {
	if c.cur == nil {
		return nil
	}
	sc := c.cur
	c.cur = nil
	return sc.Release()
}

// Active reports whether a round is open.
func (c *Cycle) Active() bool {
	return c.cur != nil
}
