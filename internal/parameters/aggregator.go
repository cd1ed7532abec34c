// Package parameters joins independently changing controls into immutable
// parameter snapshots and publishes each distinct combination once.
package parameters

import "image-analyser/internal/models"

// Snapshot is any comparable parameter record.
type Snapshot interface {
	comparable
	models.ParameterSnapshot
}

// Aggregator holds the latest value of every control as one record of type S.
// It is not safe for concurrent use; all updates come from the control thread.
type Aggregator[S Snapshot] struct {
	current     S
	defaults    S
	subscribers []func(S)
}

func NewAggregator[S Snapshot](defaults S) *Aggregator[S] {
	return &Aggregator[S]{current: defaults, defaults: defaults}
}

// Snapshot returns the current record.
func (a *Aggregator[S]) Snapshot() S {
	return a.current
}

// Subscribe registers fn to receive every accepted snapshot.
func (a *Aggregator[S]) Subscribe(fn func(S)) {
	a.subscribers = append(a.subscribers, fn)
}

// Update applies mutate to a copy of the current record. If the result equals
// the current record nothing happens and Update returns false; otherwise the
// new record replaces the old one and is published exactly once.
func (a *Aggregator[S]) Update(mutate func(*S)) bool {
	next := a.current
	mutate(&next)
	if next == a.current {
		return false
	}
	a.current = next
	for _, fn := range a.subscribers {
		fn(next)
	}
	return true
}

// Reset restores the defaults as one update.
func (a *Aggregator[S]) Reset() bool {
	return a.Update(func(s *S) { *s = a.defaults })
}
