package model

import (
	"math/rand"
	"testing"
	"time"
)

func TestTabBar_Wraps(t *testing.T) {
	tb := TabBar{Titles: []string{"a", "b", "c"}}
	tb.Previous()
	if tb.Index != 2 {
		t.Fatalf("previous from 0 = %d, want 2", tb.Index)
	}
	tb.Next()
	if tb.Index != 0 {
		t.Fatalf("next from 2 = %d, want 0", tb.Index)
	}

	var empty TabBar
	empty.Next()
	empty.Previous()
	if empty.Index != 0 {
		t.Fatalf("empty tab bar moved to %d", empty.Index)
	}
}

func TestCollection_TabsMirrorNotes(t *testing.T) {
	c := NewCollection()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		switch r.Intn(4) {
		case 0, 1:
			c.AddNote("n")
		case 2:
			c.RemoveActive()
		case 3:
			c.NextTab()
		}
		tabs := c.Tabs()
		if len(tabs.Titles) != c.Len() {
			t.Fatalf("step %d: %d tabs for %d notes", i, len(tabs.Titles), c.Len())
		}
		if tabs.Index != c.SelectedIndex() {
			t.Fatalf("step %d: tab index %d, note cursor %d", i, tabs.Index, c.SelectedIndex())
		}
		if c.Len() > 0 && (tabs.Index < 0 || tabs.Index >= c.Len()) {
			t.Fatalf("step %d: tab index %d out of [0,%d)", i, tabs.Index, c.Len())
		}
	}
}

func TestCollection_RemoveActiveClamps(t *testing.T) {
	c := NewCollection(NewNote("one"), NewNote("two"), NewNote("three"))
	c.Select(2)
	c.RemoveActive()
	if c.SelectedIndex() != 1 {
		t.Fatalf("active = %d, want 1", c.SelectedIndex())
	}
	if got := c.Active().Title; got != "two" {
		t.Fatalf("active title = %q", got)
	}

	c.RemoveActive()
	c.RemoveActive()
	if c.Len() != 0 || c.Active() != nil || c.SelectedIndex() != 0 {
		t.Fatalf("after removing all: len %d active %v", c.Len(), c.Active())
	}
	c.RemoveActive()
	c.NextTab()
	c.PreviousTab()
}

func TestCollection_AddNoteSelectsIt(t *testing.T) {
	c := DefaultCollection(time.Now())
	c.AddNote("Groceries")
	if got := c.Active().Title; got != "Groceries" {
		t.Fatalf("active = %q", got)
	}
	tabs := c.Tabs()
	if tabs.Titles[tabs.Index] != "Groceries" {
		t.Fatalf("tab %d = %q", tabs.Index, tabs.Titles[tabs.Index])
	}
}

func TestCollection_TabNavigationWraps(t *testing.T) {
	c := NewCollection(NewNote("a"), NewNote("b"))
	c.PreviousTab()
	if c.Active().Title != "b" {
		t.Fatalf("previous from first = %q", c.Active().Title)
	}
	c.NextTab()
	if c.Active().Title != "a" {
		t.Fatalf("next from last = %q", c.Active().Title)
	}
}
