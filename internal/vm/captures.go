package vm

// Captures accumulates the text of capture groups for one match
// invocation. Groups are appended when their closing marker is
// reached, so nested groups appear inner first.
//
// A nil *Captures discards everything.
type Captures struct {
	groups []string
}

// Reset clears all groups.
func (c *Captures) Reset() {
	if c != nil {
		c.groups = c.groups[:0]
	}
}

// Append records a group.
func (c *Captures) Append(s string) {
	if c != nil {
		c.groups = append(c.groups, s)
	}
}

// Truncate drops every group recorded after the first n.
func (c *Captures) Truncate(n int) {
	if c != nil && n < len(c.groups) {
		c.groups = c.groups[:n]
	}
}

// Len returns the number of recorded groups.
func (c *Captures) Len() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// Get returns group i. It panics if i is out of range.
func (c *Captures) Get(i int) string {
	return c.groups[i]
}

// Groups returns a copy of the recorded groups.
func (c *Captures) Groups() []string {
	if c == nil || len(c.groups) == 0 {
		return nil
	}
	return append([]string(nil), c.groups...)
}
