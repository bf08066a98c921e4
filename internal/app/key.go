package app

// KeyType classifies an input event.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEsc
	KeyCtrl
)

// Key is one keyboard event. Rune is the character for KeyRune and the
// letter for KeyCtrl.
type Key struct {
	Type KeyType
	Rune rune
}

func Char(r rune) Key { return Key{Type: KeyRune, Rune: r} }
func Ctrl(r rune) Key { return Key{Type: KeyCtrl, Rune: r} }
