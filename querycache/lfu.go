package querycache

// lfuMeta tracks one key's access frequency and last-set order.
type lfuMeta struct {
	freq   int
	setSeq uint64
}

// lfuStrategy evicts the minimum-frequency key, breaking ties toward the
// oldest last-set entry. Frequencies move only on Get hits: a new key
// starts at 1 and an overwrite keeps the existing counter while refreshing
// the key's set order.
//
// Ordering uses a monotonic per-cache sequence instead of wall-clock
// timestamps so equal-clock inserts still have a total order.
type lfuStrategy struct {
	meta map[string]*lfuMeta
	seq  uint64
}

func newLFUStrategy() *lfuStrategy {
	return &lfuStrategy{meta: make(map[string]*lfuMeta)}
}

func (s *lfuStrategy) onInsert(key string, overwrite bool) {
	s.seq++
	if m, ok := s.meta[key]; ok && overwrite {
		m.setSeq = s.seq
		return
	}
	s.meta[key] = &lfuMeta{freq: 1, setSeq: s.seq}
}

func (s *lfuStrategy) onAccess(key string) {
	if m, ok := s.meta[key]; ok {
		m.freq++
	}
}

func (s *lfuStrategy) onRemove(key string) {
	delete(s.meta, key)
}

// victim scans for the least frequently used key. The scan runs only on
// the eviction path, never on Get or plain Set.
func (s *lfuStrategy) victim() string {
	var victim string
	var vm *lfuMeta
	for key, m := range s.meta {
		if vm == nil || m.freq < vm.freq || (m.freq == vm.freq && m.setSeq < vm.setSeq) {
			victim, vm = key, m
		}
	}
	return victim
}

func (s *lfuStrategy) reset() {
	s.meta = make(map[string]*lfuMeta)
	s.seq = 0
}

// Ensure lfuStrategy implements strategy
var _ strategy = (*lfuStrategy)(nil)
