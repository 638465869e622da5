package hyfs

import "sort"

// Tag attaches label to eid. Both directions of the tag index are
// updated in the same step, and repeat calls are no-ops.
//
// No existence check is made against the store: a tag may reference an
// eid whose entity has left the filesystem, which is intentional.
func (s *Store) Tag(eid, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tagged[label] == nil {
		s.tagged[label] = make(map[string]bool)
	}
	s.tagged[label][eid] = true
	if s.labels[eid] == nil {
		s.labels[eid] = make(map[string]bool)
	}
	s.labels[eid][label] = true
}

// Untag removes label from eid. Idempotent. Empty buckets are pruned
// on both sides so neither map accumulates dead keys.
func (s *Store) Untag(eid, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if eids := s.tagged[label]; eids != nil {
		delete(eids, eid)
		if len(eids) == 0 {
			delete(s.tagged, label)
		}
	}
	if names := s.labels[eid]; names != nil {
		delete(names, label)
		if len(names) == 0 {
			delete(s.labels, eid)
		}
	}
}

// Tagged returns the eids carrying label, sorted. A label nobody
// carries yields nil.
func (s *Store) Tagged(label string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.tagged[label])
}

// Labels returns the labels attached to eid, sorted.
func (s *Store) Labels(eid string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.labels[eid])
}

// TagCount returns the number of distinct labels in use.
func (s *Store) TagCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tagged)
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
