package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/hfwin/handsfree/internal/model"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	ferr := fn()
	w.Close()
	os.Stdout = old

	if ferr != nil {
		t.Fatal(ferr)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func sampleWindows() WindowsResult {
	return WindowsResult{
		TS: 1707500000,
		Windows: []model.Window{
			{Title: "Untitled - Notepad", ClassName: "Notepad", PID: 1234, Focused: true},
			{Title: "Downloads", ClassName: "CabinetWClass", PID: 5678},
		},
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintJSON(sampleWindows())
	})

	// Compact output is a single line plus the trailing newline from Encode.
	if strings.Count(out, "\n") > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded WindowsResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Windows) != 2 {
		t.Errorf("windows: got %d, want 2", len(decoded.Windows))
	}
	if decoded.Windows[0].Title != "Untitled - Notepad" {
		t.Errorf("title: got %q, want %q", decoded.Windows[0].Title, "Untitled - Notepad")
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintPrettyJSON(sampleWindows())
	})

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
	var decoded WindowsResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestPrintYAMLDefault(t *testing.T) {
	if OutputFormat != FormatYAML {
		t.Fatalf("default format = %q, want %q", OutputFormat, FormatYAML)
	}
	out := captureStdout(t, func() error {
		return Print(sampleWindows())
	})

	if !strings.Contains(out, "title: Untitled - Notepad") {
		t.Errorf("yaml output missing window title:\n%s", out)
	}
	if strings.Contains(out, "handle") {
		t.Errorf("native handle leaked into output:\n%s", out)
	}
}

func TestPrintHonorsFormatFlag(t *testing.T) {
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = oldFormat, oldPretty }()

	OutputFormat = FormatJSON
	PrettyOutput = false
	out := captureStdout(t, func() error {
		return Print(sampleWindows())
	})
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON output, got:\n%s", out)
	}

	OutputFormat = "toml"
	if err := Print(sampleWindows()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestPrintJSONKeepsHTMLUnescaped(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintJSON(map[string]string{"url": "https://example.com/a?b=1&c=<2>"})
	})
	if strings.Contains(out, `&`) || strings.Contains(out, `<`) {
		t.Errorf("HTML escaping should be off, got:\n%s", out)
	}
}
