package marquee

import "sort"

// Subscriptions owns the cancel functions of every listener and pending
// callback an instance registered with its host. Releasing it is the single
// teardown path, so nothing outlives Stop.
//
// The zero value is ready to use.
type Subscriptions struct {
	next     int
	entries  map[int]subscription
	released bool
}

type subscription struct {
	name   string
	cancel func()
}

// Add takes ownership of cancel and returns its id. After ReleaseAll, Add
// cancels immediately and returns 0.
func (s *Subscriptions) Add(name string, cancel func()) int {
	if cancel == nil {
		return 0
	}
	if s.released {
		cancel()
		return 0
	}
	if s.entries == nil {
		s.entries = make(map[int]subscription)
	}
	s.next++
	s.entries[s.next] = subscription{name: name, cancel: cancel}
	return s.next
}

// Release cancels a single subscription. Unknown ids are ignored.
func (s *Subscriptions) Release(id int) {
	sub, ok := s.entries[id]
	if !ok {
		return
	}
	delete(s.entries, id)
	sub.cancel()
}

// ReleaseAll cancels every subscription in registration order. Calling it
// again does nothing.
func (s *Subscriptions) ReleaseAll() {
	if s.released {
		return
	}
	s.released = true
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.Release(id)
	}
}

// Len returns the number of live subscriptions.
func (s *Subscriptions) Len() int {
	return len(s.entries)
}

// Names returns the names of live subscriptions, sorted.
func (s *Subscriptions) Names() []string {
	names := make([]string, 0, len(s.entries))
	for _, sub := range s.entries {
		names = append(names, sub.name)
	}
	sort.Strings(names)
	return names
}
