package tty

import (
	"bufio"
	"io"
)

// KeyCode identifies a decoded key press.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyCtrlC
	KeyCtrl // any other ctrl+<letter>, letter in Rune
)

// Key is a single key press read from a terminal in raw mode.
type Key struct {
	Code KeyCode
	Rune rune
}

// String returns the key name in the form used by bubbles/key bindings
// ("up", "enter", "ctrl+c", "q", ...).
func (k Key) String() string {
	switch k.Code {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	default:
		return string(k.Rune)
	}
}

const (
	byteCtrlC     = 0x03
	byteBackspace = 0x08
	byteTab       = '\t'
	byteLF        = '\n'
	byteCR        = '\r'
	byteEsc       = 0x1b
	byteDel       = 0x7f
)

// decoder turns the raw byte stream of a terminal into key presses.
type decoder struct {
	r *bufio.Reader
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReader(r)}
}

// next blocks until a complete key has been read. Unrecognised escape
// sequences are consumed and skipped.
func (d *decoder) next() (Key, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}

		switch {
		case b == byteCR || b == byteLF:
			return Key{Code: KeyEnter}, nil
		case b == byteCtrlC:
			return Key{Code: KeyCtrlC}, nil
		case b == byteTab:
			return Key{Code: KeyTab}, nil
		case b == byteDel || b == byteBackspace:
			return Key{Code: KeyBackspace}, nil
		case b == byteEsc:
			key, ok, err := d.escape()
			if err != nil {
				return Key{}, err
			}
			if ok {
				return key, nil
			}
		case b < 0x20:
			return Key{Code: KeyCtrl, Rune: ctrlRune(b)}, nil
		default:
			if err := d.r.UnreadByte(); err != nil {
				return Key{}, err
			}
			r, _, err := d.r.ReadRune()
			if err != nil {
				return Key{}, err
			}
			return Key{Code: KeyRune, Rune: r}, nil
		}
	}
}

// escape decodes the bytes following ESC. A lone ESC (nothing else arrived
// in the same read) is the escape key itself.
func (d *decoder) escape() (Key, bool, error) {
	if d.r.Buffered() == 0 {
		return Key{Code: KeyEsc}, true, nil
	}

	intro, err := d.r.ReadByte()
	if err != nil {
		return Key{}, false, err
	}
	if intro != '[' && intro != 'O' {
		// alt+<key> is not modelled; report ESC and let the byte decode on its own
		if err := d.r.UnreadByte(); err != nil {
			return Key{}, false, err
		}
		return Key{Code: KeyEsc}, true, nil
	}

	// CSI parameters run until a final byte in 0x40-0x7e
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return Key{}, false, err
		}
		if b < 0x20 {
			// cut-off sequence; the control byte is a key of its own
			if err := d.r.UnreadByte(); err != nil {
				return Key{}, false, err
			}
			return Key{}, false, nil
		}
		if b < 0x40 || b > 0x7e {
			continue
		}
		switch b {
		case 'A':
			return Key{Code: KeyUp}, true, nil
		case 'B':
			return Key{Code: KeyDown}, true, nil
		case 'C':
			return Key{Code: KeyRight}, true, nil
		case 'D':
			return Key{Code: KeyLeft}, true, nil
		}
		return Key{}, false, nil
	}
}

// ctrlRune names the key that produced control byte b: 0x01-0x1a are
// ctrl+a..ctrl+z, 0x00 is ctrl+@ and 0x1c-0x1f are ctrl+\ ctrl+] ctrl+^ ctrl+_.
func ctrlRune(b byte) rune {
	r := rune(b) + '@'
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return r
}
