package components

import "sync"

// Store holds the in-memory component tree shared by every request handler.
// Construct one at process start and pass the handle around; all operations
// serialize through its lock.
type Store struct {
	mu    sync.RWMutex
	roots []*Component
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{roots: []*Component{}}
}

// Insert appends a root-level node.
func (s *Store) Insert(node *Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = append(s.roots, node)
}

// Reset replaces the whole tree. Used by seeding and tests.
func (s *Store) Reset(roots []*Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = CloneTree(roots)
	if s.roots == nil {
		s.roots = []*Component{}
	}
}

// FindByID returns a deep copy of the first matching node anywhere in the
// tree, walking depth-first with each node visited before its children.
func (s *Store) FindByID(id string) (*Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node := findInTree(s.roots, id)
	if node == nil {
		return nil, false
	}
	return node.Clone(), true
}

// Replace swaps the first matching node for replacement, keeping its slot.
func (s *Store) Replace(id string, replacement *Component) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replaceInTree(s.roots, id, replacement)
}

// Remove splices out the first matching node and its subtree.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFromTree(&s.roots, id)
}

// Roots returns a deep copy of the top-level nodes.
func (s *Store) Roots() []*Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneTree(s.roots)
}

// RootsByType returns deep copies of top-level nodes of the given variant.
func (s *Store) RootsByType(t Type) []*Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneTree(collectByType(s.roots, t))
}
