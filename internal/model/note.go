package model

// Note is a sticky note: a title, a free-text memo and its todos.
type Note struct {
	Title string     `json:"title"`
	Note  string     `json:"note"`
	List  List[Todo] `json:"list"`
}

func NewNote(title string) Note {
	return Note{Title: title, List: NewList[Todo]()}
}

// Stats counts completed and open todos.
func (n *Note) Stats() (done, pending int) {
	for _, t := range n.List.Items() {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
