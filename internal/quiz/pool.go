package quiz

import "math/rand/v2"

// pool is an ordered set supporting uniform random removal in O(1).
type pool struct {
	items []string
	index map[string]int
}

func newPool(items []string) *pool {
	p := &pool{
		items: make([]string, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if _, dup := p.index[item]; dup {
			continue
		}
		p.index[item] = len(p.items)
		p.items = append(p.items, item)
	}
	return p
}

func (p *pool) Len() int {
	return len(p.items)
}

func (p *pool) Contains(item string) bool {
	_, ok := p.index[item]
	return ok
}

// Take removes and returns a uniformly chosen item. The pool must not be empty.
func (p *pool) Take(r *rand.Rand) string {
	i := r.IntN(len(p.items))
	item := p.items[i]
	last := len(p.items) - 1
	if i != last {
		moved := p.items[last]
		p.items[i] = moved
		p.index[moved] = i
	}
	p.items = p.items[:last]
	delete(p.index, item)
	return item
}
