package clipboard

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestWriteTextNoPanic(t *testing.T) {
	var buf bytes.Buffer
	orig := osc52Out
	osc52Out = &buf
	defer func() { osc52Out = orig }()

	// The native clipboard is usually missing in CI; either path is fine.
	_ = WriteText("https://example.com/stickers/cats/a.png")
}

func TestOSC52Encoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"url", "https://example.com/stickers/cats/a.png"},
		{"path with spaces", "/srv/stickers/my pack/a b.png"},
		{"unicode", "表情包/猫.png"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeOSC52(&buf, tt.input); err != nil {
				t.Fatalf("writeOSC52 returned error: %v", err)
			}
			want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(tt.input)) + "\x07"
			if got := buf.String(); got != want {
				t.Errorf("OSC52 mismatch\ngot:  %q\nwant: %q", got, want)
			}
		})
	}
}

func TestOSC52SequenceFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOSC52(&buf, "test data"); err != nil {
		t.Fatalf("writeOSC52 returned error: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "\x1b]52;c;") {
		t.Errorf("expected OSC52 prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\x07") {
		t.Errorf("expected BEL suffix, got %q", got)
	}
}
