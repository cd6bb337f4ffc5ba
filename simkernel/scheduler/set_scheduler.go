package scheduler

import (
	"math/rand"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
)

// SetScheduler keeps pending handles in an ordered multiset, implemented
// as a treap (a randomized balanced binary search tree) keyed by
// event.Less. Insertion and removal of the minimum are both O(log N)
// expected, independent of arrival order — the Go counterpart to a
// sorted std::set<Ptr<EventHandle>> in the original framework. No
// suitable third-party ordered-set/tree library is available among this
// module's dependencies (see DESIGN.md), so the treap is implemented
// directly on math/rand.
type SetScheduler struct {
	base
	root *treapNode
	size uint64
	rnd  *rand.Rand
}

// treapNode is one node of the treap: a scheduled handle, a random
// priority used to keep the tree balanced in expectation, and its two
// children.
type treapNode struct {
	h        *event.Handle
	priority int64
	left     *treapNode
	right    *treapNode
}

// NewSetScheduler constructs an unbound SetScheduler. UseClock must be
// called before any Schedule* method.
func NewSetScheduler() *SetScheduler {
	return &SetScheduler{rnd: rand.New(rand.NewSource(1))}
}

// UseClock binds the scheduler's clock. See Scheduler.UseClock.
func (s *SetScheduler) UseClock(c clock.Clock) error { return s.base.useClock(c) }

// ScheduleNow schedules sink to fire at the clock's current time.
func (s *SetScheduler) ScheduleNow(sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now(), sink)
}

// ScheduleIn schedules sink to fire dt after the clock's current time.
func (s *SetScheduler) ScheduleIn(dt chrono.Duration, sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now().Add(dt), sink)
}

// ScheduleAt schedules sink to fire at t, inserting it into the treap.
func (s *SetScheduler) ScheduleAt(t chrono.TimePoint, sink event.Sink) (*event.Handle, error) {
	id, err := s.validate(sink, t)
	if err != nil {
		return nil, err
	}
	h := event.NewHandle(id, t, sink)
	s.root = treapInsert(s.root, &treapNode{h: h, priority: s.rnd.Int63()})
	s.size++
	return h, nil
}

// GetNumEvents returns the number of handles still in the set.
func (s *SetScheduler) GetNumEvents() uint64 { return s.size }

// GetNextEvent returns the earliest handle without removing it, or nil.
func (s *SetScheduler) GetNextEvent() *event.Handle {
	n := s.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n.h
}

// FireAndRemoveNextEvent fires and removes the earliest handle, if any.
func (s *SetScheduler) FireAndRemoveNextEvent() {
	if s.root == nil {
		return
	}
	n := s.root
	for n.left != nil {
		n = n.left
	}
	n.h.Fire()
	s.root = treapDeleteMin(s.root)
	s.size--
}

// treapInsert inserts n into the treap rooted at root, keeping left <
// right order under event.Less and max-heap order on priority among
// ancestors, via rotation.
func treapInsert(root, n *treapNode) *treapNode {
	if root == nil {
		return n
	}
	if event.Less(n.h, root.h) {
		root.left = treapInsert(root.left, n)
		if root.left.priority > root.priority {
			root = rotateRight(root)
		}
	} else {
		root.right = treapInsert(root.right, n)
		if root.right.priority > root.priority {
			root = rotateLeft(root)
		}
	}
	return root
}

// treapDeleteMin removes the left-most (earliest) node from the treap
// rooted at root.
func treapDeleteMin(root *treapNode) *treapNode {
	if root.left == nil {
		return root.right
	}
	root.left = treapDeleteMin(root.left)
	return root
}

func rotateRight(n *treapNode) *treapNode {
	l := n.left
	n.left = l.right
	l.right = n
	return l
}

func rotateLeft(n *treapNode) *treapNode {
	r := n.right
	n.right = r.left
	r.left = n
	return r
}
