package model

// Collection is every sticky note the user has, in tab order.
// The cursor of the embedded list is the active tab.
type Collection struct {
	List[Note]
}

func NewCollection(notes ...Note) Collection {
	return Collection{List: NewList(notes...)}
}

// Tabs derives the tab bar from the notes. There is no separate title
// list to keep in sync.
func (c *Collection) Tabs() TabBar {
	titles := make([]string, 0, c.Len())
	for _, n := range c.Items() {
		titles = append(titles, n.Title)
	}
	return TabBar{Titles: titles, Index: c.SelectedIndex()}
}

func (c *Collection) NextTab() {
	tabs := c.Tabs()
	tabs.Next()
	c.Select(tabs.Index)
}

func (c *Collection) PreviousTab() {
	tabs := c.Tabs()
	tabs.Previous()
	c.Select(tabs.Index)
}

// Active is the note under the tab cursor, nil when there are none.
func (c *Collection) Active() *Note { return c.Current() }

// AddNote appends an empty note and makes it active.
func (c *Collection) AddNote(title string) {
	c.Append(NewNote(title))
	c.Select(c.Len() - 1)
}

// RemoveActive drops the active note; the cursor is clamped to what remains.
func (c *Collection) RemoveActive() {
	c.RemoveAt(c.SelectedIndex())
}
