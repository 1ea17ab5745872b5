package viz

import "golang.design/x/clipboard"

// Clipboard receives exported coordinates.
type Clipboard interface {
	WriteText(s string) error
}

type systemClipboard struct{}

// SystemClipboard returns the OS clipboard, or an error when this session
// has none (headless, no display server, cgo disabled).
func SystemClipboard() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemClipboard{}, nil
}

func (systemClipboard) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}
