package ui

import "encoding/binary"

// ID is a stable widget identity. It is an FNV-1a fold of the enclosing
// id-stack seed, the widget label and, for repeated labels in the same
// frame, a sibling counter. The same declaration sequence yields the
// same ID every frame, which is what keys persistent widget state.
type ID uint64

const (
	fnvOffset ID = 14695981039346656037
	fnvPrime  ID = 1099511628211
)

func fold(seed ID, data string) ID {
	h := seed
	for i := 0; i < len(data); i++ {
		h ^= ID(data[i])
		h *= fnvPrime
	}
	return h
}

func foldUint(seed ID, v uint64) ID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h := seed
	for i := 0; i < len(b); i++ {
		h ^= ID(b[i])
		h *= fnvPrime
	}
	return h
}

// idSeed is the hash all ids declared right now fold on top of: the top
// of the explicit id stack if any, else the current container identity.
func (c *Context) idSeed() ID {
	if n := len(c.idStack); n > 0 {
		return c.idStack[n-1]
	}
	if cnt := c.currentContainer(); cnt != nil {
		return cnt.id
	}
	return fnvOffset
}

// PushID scopes subsequent widget ids under name. Use it to
// disambiguate identical labels declared from different call sites.
func (c *Context) PushID(name string) {
	if len(c.idStack) >= c.cfg.IDDepth {
		c.fail(ErrStackOverflow)
		return
	}
	c.idStack = append(c.idStack, fold(c.idSeed(), name))
}

// PushIDInt scopes subsequent widget ids under a numeric discriminator,
// typically a loop index.
func (c *Context) PushIDInt(n int) {
	if len(c.idStack) >= c.cfg.IDDepth {
		c.fail(ErrStackOverflow)
		return
	}
	c.idStack = append(c.idStack, foldUint(c.idSeed(), uint64(n)))
}

func (c *Context) PopID() {
	if len(c.idStack) == 0 {
		c.fail(ErrUnbalancedContainers)
		return
	}
	c.idStack = c.idStack[:len(c.idStack)-1]
}

type idUse struct {
	label string
	n     int
}

// widgetID derives the identity for a widget labelled label at the
// current id scope. Two widgets with the same label in the same scope
// in one frame auto-disambiguate via a sibling counter; the counter is
// deterministic because it follows declaration order, so identities
// stay stable across frames for an unchanged call sequence. A raw hash
// collision between two distinct labels is counted as a warning.
func (c *Context) widgetID(label string) ID {
	raw := fold(c.idSeed(), label)
	use, seen := c.idUses[raw]
	if !seen {
		c.idUses[raw] = idUse{label: label, n: 1}
		return raw
	}
	if use.label != label {
		c.warnings++
	}
	use.n++
	c.idUses[raw] = use
	return foldUint(raw, uint64(use.n-1))
}
