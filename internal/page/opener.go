package page

import (
	"io"

	"github.com/pkg/browser"
)

// Opener hands an external URL to the host.
type Opener interface {
	Open(url string) error
}

type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener opens URLs in the system browser. The launcher's own
// output is discarded so it cannot garble a terminal host.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
