package model

import "encoding/json"

// List is an ordered container with a single cursor.
// The cursor is always in [0, Len()) or 0 when the list is empty,
// and every operation is a no-op when it would break that.
type List[T any] struct {
	items    []T
	selected int
}

// NewList wraps items with the cursor on the first element.
func NewList[T any](items ...T) List[T] {
	return List[T]{items: items}
}

func (l *List[T]) Len() int           { return len(l.items) }
func (l *List[T]) SelectedIndex() int { return l.selected }

// Items exposes the backing slice. Callers must not append to it.
func (l *List[T]) Items() []T { return l.items }

// At returns the element at i, or false when i is out of range.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Selected returns the element under the cursor. It never panics.
func (l *List[T]) Selected() (T, bool) { return l.At(l.selected) }

// Current is like Selected but returns a pointer for in-place edits.
func (l *List[T]) Current() *T {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

func (l *List[T]) Append(v T) { l.items = append(l.items, v) }

// Set replaces the element at i and reports whether i was valid.
func (l *List[T]) Set(i int, v T) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// Select moves the cursor to i, clamped into range.
func (l *List[T]) Select(i int) {
	l.selected = clamp(i, len(l.items))
}

func (l *List[T]) SelectPrevious() {
	if l.selected > 0 {
		l.selected--
	}
}

func (l *List[T]) SelectNext() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// RemoveAt deletes the element at i. The cursor keeps pointing at the same
// element when an earlier one is removed, and is pulled back when it would
// fall off the end.
func (l *List[T]) RemoveAt(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	if i < l.selected {
		l.selected--
	}
	l.selected = clamp(l.selected, len(l.items))
}

// RemoveSelected deletes the element under the cursor, stepping the cursor
// back one first unless it already sits on the first element.
func (l *List[T]) RemoveSelected() {
	if len(l.items) == 0 {
		return
	}
	i := l.selected
	if l.selected > 0 {
		l.selected--
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.selected = clamp(l.selected, len(l.items))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

type listJSON[T any] struct {
	Items    []T `json:"items"`
	Selected int `json:"selected"`
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	items := l.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(listJSON[T]{Items: items, Selected: l.selected})
}

// UnmarshalJSON accepts any persisted cursor and clamps it into range.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	var w listJSON[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	l.items = w.Items
	l.selected = clamp(w.Selected, len(w.Items))
	return nil
}
