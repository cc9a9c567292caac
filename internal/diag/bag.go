package diag

// Bag collects the diagnostics of one file in emission order. It only grows.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Extend(ds []Diagnostic) {
	b.items = append(b.items, ds...)
}

// Items returns a copy of the collected diagnostics, nil when empty.
func (b *Bag) Items() []Diagnostic {
	if len(b.items) == 0 {
		return nil
	}
	return append([]Diagnostic(nil), b.items...)
}
