package querycache

import "container/list"

// lruStrategy keeps a recency list: front is least recently used, back is
// most recently used. Both Get hits and Sets move a key to the back; this
// is the only policy where reads reorder state.
type lruStrategy struct {
	order *list.List // element values are string keys
	index map[string]*list.Element
}

func newLRUStrategy() *lruStrategy {
	return &lruStrategy{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

func (s *lruStrategy) onInsert(key string, _ bool) {
	if el, ok := s.index[key]; ok {
		s.order.MoveToBack(el)
		return
	}
	s.index[key] = s.order.PushBack(key)
}

func (s *lruStrategy) onAccess(key string) {
	if el, ok := s.index[key]; ok {
		s.order.MoveToBack(el)
	}
}

func (s *lruStrategy) onRemove(key string) {
	if el, ok := s.index[key]; ok {
		s.order.Remove(el)
		delete(s.index, key)
	}
}

func (s *lruStrategy) victim() string {
	return s.order.Front().Value.(string)
}

func (s *lruStrategy) reset() {
	s.order.Init()
	s.index = make(map[string]*list.Element)
}

// Ensure lruStrategy implements strategy
var _ strategy = (*lruStrategy)(nil)
