package corelog

import "sync"

// Manager is the substitute this module uses for the spec's thread-local
// frame stack. Go has no portable, introspectable thread identity (and no
// stable goroutine ID at all), so frames are stacked per Manager instead of
// per OS thread. The zero Manager is usable directly. A Root folds in only
// the frames of its own Manager (see Root.Scope), so a frame pushed there is
// seen by log calls from every goroutine using that Root; frames are not
// kept apart per goroutine or per thread.
type Manager struct {
	mu  sync.Mutex
	top *Frame
}

// getTop returns the current top frame.
func (m *Manager) getTop() *Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.top
}

// reset replaces the Manager's current top frame with f (mirrors the spec's
// manager.reset(pointer)). It has no caller in this package; rebind sets
// the top of the target Manager itself.
func (m *Manager) reset(f *Frame) {
	m.mu.Lock()
	m.top = f
	m.mu.Unlock()
}

// Frame is a stack-scoped value adding attributes to the current scope's
// pack for the frame's lifetime. Push constructs and installs a Frame; Pop
// removes it and restores the previous top exactly, even if frames are
// popped out of LIFO order due to a programmer error elsewhere (Pop always
// walks from the manager's current top to splice the receiver out, rather
// than assuming it is sitting at the top).
type Frame struct {
	mgr  *Manager
	list List
	prev *Frame
}

// Push adds a new frame carrying attrs onto mgr's stack and returns it. The
// returned Frame's Pop method must be called (typically via defer) to
// restore the previous top.
func Push(mgr *Manager, attrs List) *Frame {
	f := &Frame{mgr: mgr, list: attrs}
	mgr.mu.Lock()
	f.prev = mgr.top
	mgr.top = f
	mgr.mu.Unlock()
	return f
}

// Pop removes the frame from its manager's stack, restoring whatever was
// below it. Popping a frame that is not currently the top splices it out of
// the middle of the chain instead of corrupting it — this keeps a
// programmer error (frames popped out of order) from leaving the stack in a
// state where an unrelated frame's attributes leak or disappear.
func (f *Frame) Pop() {
	if f == nil || f.mgr == nil {
		return
	}
	m := f.mgr
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.top == f {
		m.top = f.prev
		f.mgr = nil
		return
	}
	for p := m.top; p != nil; p = p.prev {
		if p.prev == f {
			p.prev = f.prev
			break
		}
	}
	f.mgr = nil
}

// collect walks from the manager's current top to the root and places each
// frame's list ahead of pack, innermost (top) first. A scoped frame models
// the most locally-scoped context at the point of the call, so it must win
// lookup over both the logger-wide attributes a Wrapper contributes and
// whatever pack the caller passed explicitly — see DESIGN.md's note on
// reconciling this with spec.md §4.1's prose, which (read in isolation)
// suggests frames should be appended rather than prepended; the worked
// example in spec.md §8 scenario 2 (a scoped frame overriding a Wrapper's
// attribute) only holds if frames are given the highest precedence, so that
// is what this implementation does.
func (m *Manager) collect(pack Pack) Pack {
	if m == nil {
		return pack
	}
	var chain []*Frame
	for f := m.getTop(); f != nil; f = f.prev {
		chain = append(chain, f)
	}
	if len(chain) == 0 {
		return pack
	}
	out := make(Pack, 0, len(chain)+len(pack))
	for _, f := range chain {
		l := f.list
		out = append(out, &l)
	}
	out = append(out, pack...)
	return out
}

// rebind re-points every frame in the chain rooted at the manager's current
// top at a new manager. This is the only legal mutation of an existing
// frame's identity, used when a Logger (and therefore its Manager) is
// replaced and existing Frame values must continue to affect the new
// Logger's log calls.
func (m *Manager) rebind(newMgr *Manager) {
	m.mu.Lock()
	top := m.top
	m.top = nil
	m.mu.Unlock()

	for f := top; f != nil; f = f.prev {
		f.mgr = newMgr
	}
	newMgr.mu.Lock()
	// Splice the whole chain onto whatever the new manager already had.
	if top != nil {
		tail := top
		for tail.prev != nil {
			tail = tail.prev
		}
		tail.prev = newMgr.top
		newMgr.top = top
	}
	newMgr.mu.Unlock()
}
