// Package dlist implements a generic intrusive doubly-linked list:
// O(1) insert, remove, and splice for elements that already carry
// their own link fields, without the double indirection of
// container/list (whose *list.Element isn't embeddable and needs a
// parallel map to find a given payload's node for O(1) removal).
//
// Go has no CRTP, so a value can't inherit its link fields the way an
// intrusive C++ list node type would. Instead every element embeds an
// Elem[T], and the list is told how to find that Elem via an accessor
// function supplied at construction. A single T can participate in
// more than one list by embedding more than one Elem[T] field and
// constructing one List per field. (In hir, an Instruction embeds one
// Elem for its block's instruction list; each of its operand slots is
// an Operand with its own Elem, linked into the users list of the
// value it reads.)
package dlist

// Elem is the embeddable link node. Zero value is an unlinked node.
type Elem[T any] struct {
	next, prev *Elem[T]
	value      *T
	list       *List[T]
}

// Value returns the payload this element was initialized with.
func (e *Elem[T]) Value() *T { return e.value }

// Linked reports whether e currently belongs to a list.
func (e *Elem[T]) Linked() bool { return e.list != nil }

// List is an intrusive doubly-linked list of *T, ordered by insertion.
type List[T any] struct {
	root   Elem[T] // sentinel; root.next is head, root.prev is tail
	elemOf func(*T) *Elem[T]
	length int
}

// New constructs a List whose nodes are located in T via elemOf.
// elemOf must return the same *Elem[T] field for a given *T every time.
func New[T any](elemOf func(*T) *Elem[T]) *List[T] {
	l := &List[T]{elemOf: elemOf}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
}

// Len returns the number of elements currently linked into l.
func (l *List[T]) Len() int { return l.length }

// Empty reports whether l has no elements.
func (l *List[T]) Empty() bool { return l.length == 0 }

// First returns the first element's payload, or nil if l is empty.
func (l *List[T]) First() *T {
	l.lazyInit()
	if l.root.next == &l.root {
		return nil
	}
	return l.root.next.value
}

// Last returns the last element's payload, or nil if l is empty.
func (l *List[T]) Last() *T {
	l.lazyInit()
	if l.root.prev == &l.root {
		return nil
	}
	return l.root.prev.value
}

// Next returns the payload following v, or nil if v is last or unlinked.
func (l *List[T]) Next(v *T) *T {
	e := l.elemOf(v)
	if e.list != l || e.next == &l.root {
		return nil
	}
	return e.next.value
}

// Prev returns the payload preceding v, or nil if v is first or unlinked.
func (l *List[T]) Prev(v *T) *T {
	e := l.elemOf(v)
	if e.list != l || e.prev == &l.root {
		return nil
	}
	return e.prev.value
}

// Append inserts v at the tail of l. Panics if v is already linked
// into any list: appending an already-attached node is a programmer
// error.
func (l *List[T]) Append(v *T) {
	l.lazyInit()
	e := l.elemOf(v)
	if e.list != nil {
		panic("dlist: Append of an already-linked element")
	}
	e.value = v
	l.insertAfter(e, l.root.prev)
}

// Prepend inserts v at the head of l.
func (l *List[T]) Prepend(v *T) {
	l.lazyInit()
	e := l.elemOf(v)
	if e.list != nil {
		panic("dlist: Prepend of an already-linked element")
	}
	e.value = v
	l.insertAfter(e, &l.root)
}

// InsertBefore inserts v immediately before ref. ref must already be
// linked into l.
func (l *List[T]) InsertBefore(v, ref *T) {
	re := l.elemOf(ref)
	if re.list != l {
		panic("dlist: InsertBefore with ref not in this list")
	}
	e := l.elemOf(v)
	if e.list != nil {
		panic("dlist: InsertBefore of an already-linked element")
	}
	e.value = v
	l.insertAfter(e, re.prev)
}

// InsertAfter inserts v immediately after ref. ref must already be
// linked into l.
func (l *List[T]) InsertAfter(v, ref *T) {
	re := l.elemOf(ref)
	if re.list != l {
		panic("dlist: InsertAfter with ref not in this list")
	}
	e := l.elemOf(v)
	if e.list != nil {
		panic("dlist: InsertAfter of an already-linked element")
	}
	e.value = v
	l.insertAfter(e, re)
}

func (l *List[T]) insertAfter(e, at *Elem[T]) {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.length++
}

// Remove detaches v from l. A no-op if v is not linked into l.
func (l *List[T]) Remove(v *T) {
	e := l.elemOf(v)
	if e.list != l {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next, e.prev, e.list, e.value = nil, nil, nil, nil
	l.length--
}

// Contains reports whether v is currently linked into l.
func (l *List[T]) Contains(v *T) bool {
	return l.elemOf(v).list == l
}

// Each calls fn for every element of l in list order. fn must not
// mutate l; use EachSafe for a mutation-tolerant traversal.
func (l *List[T]) Each(fn func(*T)) {
	l.lazyInit()
	for e := l.root.next; e != &l.root; e = e.next {
		fn(e.value)
	}
}

// EachSafe calls fn for every element of l in list order, advancing to
// the next element before calling fn so that fn may remove the current
// element from l.
func (l *List[T]) EachSafe(fn func(*T)) {
	l.lazyInit()
	e := l.root.next
	for e != &l.root {
		next := e.next
		fn(e.value)
		e = next
	}
}

// Slice materializes l's elements into a new slice, in list order.
func (l *List[T]) Slice() []*T {
	out := make([]*T, 0, l.length)
	l.Each(func(v *T) { out = append(out, v) })
	return out
}
