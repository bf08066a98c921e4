package model

// TabBar is the label strip over the notes. Unlike List its cursor wraps.
type TabBar struct {
	Titles []string
	Index  int
}

func (t *TabBar) Next() {
	if len(t.Titles) == 0 {
		return
	}
	t.Index = (t.Index + 1) % len(t.Titles)
}

func (t *TabBar) Previous() {
	if len(t.Titles) == 0 {
		return
	}
	if t.Index > 0 {
		t.Index--
	} else {
		t.Index = len(t.Titles) - 1
	}
}
