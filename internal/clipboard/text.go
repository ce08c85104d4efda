package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// osc52Out receives OSC 52 sequences. The terminal reads them from the tty,
// and stderr is the stream bubbletea leaves alone.
var osc52Out io.Writer = os.Stderr

// WriteText copies text to the system clipboard. It tries the native
// clipboard tools first (wl-copy, xclip, pbcopy, etc.) then falls back
// to OSC 52 so yanking still works over SSH and inside tmux.
func WriteText(text string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	return writeOSC52(osc52Out, text)
}

func writeOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded)
	return err
}
