package roster

import "sync"

// Kind says what happened to the roster.
type Kind int

const (
	Added Kind = iota
	Updated
	Removed
	Refreshed
	Swept
	Reloaded
	Status
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	case Refreshed:
		return "refreshed"
	case Swept:
		return "swept"
	case Reloaded:
		return "reloaded"
	case Status:
		return "status"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after the roster changed. IDs lists
// the accounts involved, if any.
type Change struct {
	Kind    Kind     `json:"kind"`
	IDs     []string `json:"ids,omitempty"`
	Message string   `json:"message,omitempty"`
}

type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Change)
}

func (o *observers) add(fn func(Change)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func(Change))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.fns, id)
		o.mu.Unlock()
	}
}

func (o *observers) emit(c Change) {
	o.mu.Lock()
	fns := make([]func(Change), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
