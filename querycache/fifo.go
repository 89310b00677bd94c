package querycache

import "container/list"

// fifoStrategy keeps strict insertion order: front is oldest. Reads never
// reorder anything; an overwrite re-inserts the key at the back.
type fifoStrategy struct {
	order *list.List // element values are string keys
	index map[string]*list.Element
}

func newFIFOStrategy() *fifoStrategy {
	return &fifoStrategy{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

func (s *fifoStrategy) onInsert(key string, _ bool) {
	if el, ok := s.index[key]; ok {
		s.order.MoveToBack(el)
		return
	}
	s.index[key] = s.order.PushBack(key)
}

func (s *fifoStrategy) onAccess(string) {}

func (s *fifoStrategy) onRemove(key string) {
	if el, ok := s.index[key]; ok {
		s.order.Remove(el)
		delete(s.index, key)
	}
}

func (s *fifoStrategy) victim() string {
	return s.order.Front().Value.(string)
}

func (s *fifoStrategy) reset() {
	s.order.Init()
	s.index = make(map[string]*list.Element)
}

// Ensure fifoStrategy implements strategy
var _ strategy = (*fifoStrategy)(nil)
