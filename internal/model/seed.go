package model

import "time"

// DefaultCollection is the content written on first run.
func DefaultCollection(now time.Time) Collection {
	todo := func(task, cmd string) Todo { return NewTodo(now, task, cmd) }

	intro := Note{
		Title: "Note One",
		Note:  "You can add to the Notes by hitting ctrl-k.",
		List: NewList(
			todo("You can add a Sticky Note by hitting ctrl-h", ""),
			todo("You can add a Todo by hitting ctrl-n", ""),
			todo("You can edit a Todo by hitting ctrl-e", ""),
			todo("You can check off a Todo by hitting Backspace", ""),
			todo("You can delete a Todo by hitting Delete", ""),
			todo("You can delete a Sticky by hitting ctrl-u", ""),
			todo("You can save to the data base by hitting ctrl-s", ""),
			todo("Oh you can exit by ctrl-q or Esc", ""),
			todo("Todo's can run commands when selected with Enter.", "xdg-open https://github.com/DevinR528/forget"),
		),
	}
	second := Note{
		Title: "Note Two",
		List: NewList(
			todo("First", ""),
			todo("Second", ""),
			todo("Third", ""),
		),
	}
	return NewCollection(intro, second)
}
