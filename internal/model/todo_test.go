package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCollection_JSONRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 987654321, time.Local)
	c := DefaultCollection(now)
	c.Active().List.Select(3)
	done := c.Active().List.Current()
	done.Completed = true
	c.AddNote("third")
	c.Active().Note = "multi\nline"

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Collection
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Len() != c.Len() || got.SelectedIndex() != c.SelectedIndex() {
		t.Fatalf("collection shape: got %d@%d want %d@%d", got.Len(), got.SelectedIndex(), c.Len(), c.SelectedIndex())
	}
	want := now.Truncate(time.Second)
	for i, n := range c.Items() {
		g := got.Items()[i]
		if g.Title != n.Title || g.Note != n.Note {
			t.Errorf("note %d: got %q/%q", i, g.Title, g.Note)
		}
		if g.List.Len() != n.List.Len() || g.List.SelectedIndex() != n.List.SelectedIndex() {
			t.Errorf("note %d list: got %d@%d", i, g.List.Len(), g.List.SelectedIndex())
		}
		for j, td := range n.List.Items() {
			gt := g.List.Items()[j]
			if gt.Task != td.Task || gt.Cmd != td.Cmd || gt.Completed != td.Completed {
				t.Errorf("todo %d/%d: got %+v want %+v", i, j, gt, td)
			}
			if !gt.Date.Equal(want) {
				t.Errorf("todo %d/%d date: got %v want %v", i, j, gt.Date, want)
			}
		}
	}
}

func TestTodo_WireFormat(t *testing.T) {
	d := time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 2*3600))
	b, err := json.Marshal(Todo{Date: d, Task: "t", Cmd: "ls"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, key := range []string{`"date":`, `"task":"t"`, `"cmd":"ls"`, `"completed":false`} {
		if !strings.Contains(s, key) {
			t.Errorf("%s missing %s", s, key)
		}
	}
	if strings.Contains(s, ".") {
		t.Errorf("date should have no fractional seconds: %s", s)
	}
}

func TestTodo_AcceptsFractionalDates(t *testing.T) {
	var td Todo
	in := `{"date":"2019-10-20T18:39:51.186404123-04:00","task":"x","cmd":"","completed":true}`
	if err := json.Unmarshal([]byte(in), &td); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !td.Completed || td.Task != "x" {
		t.Fatalf("got %+v", td)
	}
	if td.Date.Year() != 2019 {
		t.Fatalf("date = %v", td.Date)
	}
}

func TestList_UnmarshalClampsCursor(t *testing.T) {
	var l List[int]
	if err := json.Unmarshal([]byte(`{"items":[1,2],"selected":9}`), &l); err != nil {
		t.Fatal(err)
	}
	if l.SelectedIndex() != 1 {
		t.Fatalf("cursor = %d, want 1", l.SelectedIndex())
	}
}
