package ecs

// store is the type-erased view of a component column the world needs for
// entity destruction.
type store interface {
	remove(id entityID) bool
	len() int
}

// sparseSet keeps one component column densely packed and indexed by slot
// id. Values are stored as pointers so systems mutate them in place.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int32
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(id entityID) (int, bool) {
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id]
	if idx < 0 || int(idx) >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return int(idx), true
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e.id())
	if !ok || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id] = int32(len(s.dense) - 1)
}

func (s *sparseSet[T]) remove(id entityID) bool {
	idx, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = int32(idx)

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}

// snapshot copies the dense entity list so callers may mutate the world
// while iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	return append([]Entity(nil), s.dense...)
}
