package macro

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDoc = `- action: focus
  selector_candidates:
    window:
      title: Untitled - Notepad
    targets:
      - control_type: Document
- action: type
  selector_candidates:
    window:
      title: Untitled - Notepad
    targets:
      - control_type: Document
  text: hello world
  enter: true
  timeout: 20
- action: click
  selector_candidates:
    window:
      title: Untitled - Notepad
    targets:
      - auto_id: btnSave
        control_type: Button
      - name: Save
        control_type: Button
      - control_type: Button
        index: 0
  x: 150
  y: 320
  timeout: 20
  delay_before: 450
- action: sleep
  seconds: 1.5
`

func TestParseSampleDocument(t *testing.T) {
	steps, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(steps))
	}

	if steps[0].Action != ActionFocus {
		t.Errorf("step 0 action = %q, want focus", steps[0].Action)
	}
	if steps[1].Text != "hello world" || !steps[1].Enter {
		t.Errorf("step 1 = %+v, want text + enter", steps[1])
	}

	click := steps[2]
	if click.Selector == nil || len(click.Selector.Targets) != 3 {
		t.Fatalf("step 2 selector = %+v, want 3 targets", click.Selector)
	}
	if got := click.Selector.Targets[0].AutoID; got != "btnSave" {
		t.Errorf("first candidate auto_id = %q, want btnSave", got)
	}
	last := click.Selector.Targets[2]
	if last.Index == nil || *last.Index != 0 {
		t.Errorf("structural candidate index = %v, want 0", last.Index)
	}
	if click.DelayBefore != 450 {
		t.Errorf("delay_before = %d, want 450", click.DelayBefore)
	}

	if steps[3].Seconds != 1.5 {
		t.Errorf("sleep seconds = %v, want 1.5", steps[3].Seconds)
	}
}

// A parsed document must survive a marshal/parse cycle with every field
// intact, and re-marshaling must produce identical bytes.
func TestDocumentRoundTrip(t *testing.T) {
	steps, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out, err := Marshal(steps)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(Marshal): %v", err)
	}
	if !reflect.DeepEqual(steps, again) {
		t.Errorf("round trip changed steps:\nfirst:  %+v\nsecond: %+v", steps, again)
	}

	out2, err := Marshal(again)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Errorf("marshal not stable:\nfirst:\n%s\nsecond:\n%s", out, out2)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("- action: click\n  x: [broken"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, ErrBadDocument) {
		t.Errorf("error %v does not wrap ErrBadDocument", err)
	}
}

func TestParseRejectsInvalidStep(t *testing.T) {
	doc := "- action: sleep\n  seconds: 1\n- action: teleport\n"
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrBadDocument) {
		t.Errorf("error %v does not wrap ErrBadDocument", err)
	}
	if !strings.Contains(err.Error(), "step 1") {
		t.Errorf("error %q does not name the offending step index", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.yaml")
	steps := []Step{
		SleepStep(0.5),
		TypeStep(buttonSelector(), "hi", false),
	}

	if err := Save(path, steps); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(steps, loaded) {
		t.Errorf("loaded = %+v, want %+v", loaded, steps)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrBadDocument) {
		t.Errorf("error %v does not wrap ErrBadDocument", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not preserve the underlying cause", err)
	}
}

// Zero-valued optional fields must stay off disk so recorded documents
// remain readable.
func TestMarshalOmitsEmptyFields(t *testing.T) {
	out, err := Marshal([]Step{SleepStep(2)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	doc := string(out)
	for _, forbidden := range []string{"selector_candidates", "text:", "enter:", "timeout:", "x:", "y:"} {
		if strings.Contains(doc, forbidden) {
			t.Errorf("sleep step output contains %q:\n%s", forbidden, doc)
		}
	}
}
