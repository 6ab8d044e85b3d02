package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/output"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
)

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// intParam reads a numeric parameter. JSON numbers arrive as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func matcherParam(params map[string]interface{}) selector.WindowMatcher {
	return selector.WindowMatcher{
		Title:      stringParam(params, "title", ""),
		TitleRegex: stringParam(params, "title_regex", ""),
		ClassName:  stringParam(params, "class_name", ""),
	}
}

func hasMatcher(m selector.WindowMatcher) bool {
	return m.Title != "" || m.TitleRegex != "" || m.ClassName != ""
}

func targetParam(params map[string]interface{}) selector.Target {
	t := selector.Target{
		AutoID:      stringParam(params, "auto_id", ""),
		ControlType: stringParam(params, "control_type", ""),
		Name:        stringParam(params, "name", ""),
		NameRegex:   stringParam(params, "name_regex", ""),
	}
	if v, ok := params["index"]; ok {
		if f, ok := v.(float64); ok {
			idx := int(f)
			t.Index = &idx
		}
	}
	return t
}

func hasTarget(t selector.Target) bool {
	return t.AutoID != "" || t.ControlType != "" || t.Name != "" || t.NameRegex != "" || t.Index != nil
}

// selectorParam builds a single-candidate selector from flat tool
// parameters. Returns nil when no target property is present, so callers
// can distinguish "no selector" from "bad selector".
func selectorParam(params map[string]interface{}) (*selector.Selector, error) {
	t := targetParam(params)
	if !hasTarget(t) {
		return nil, nil
	}
	sel := &selector.Selector{
		Window:  matcherParam(params),
		Targets: []selector.Target{t},
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal result: %s", err)
	}
	return string(b)
}

// actionResult reports tool calls that do not go through the macro engine.
type actionResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Window string `yaml:"window,omitempty" json:"window,omitempty"`
}

// runOneStep executes a single step through the macro engine so MCP
// actions share its poll, timeout, and invoke-fallback semantics. The
// returned StepResult is always populated, also on failure.
func (s *Server) runOneStep(step macro.Step) (macro.StepResult, error) {
	eng := macro.NewEngine(s.driver, nil)
	eng.Logger = s.logger
	res, err := eng.Run([]macro.Step{step})
	return res.Results[0], err
}

func (s *Server) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	title := stringParam(params, "title", "")

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.WindowManager == nil {
		return mcp.NewToolResultError("window enumeration not supported on this platform"), nil
	}
	windows, err := s.provider.WindowManager.ListWindows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if title != "" {
		needle := strings.ToLower(title)
		var filtered []model.Window
		for _, w := range windows {
			if strings.Contains(strings.ToLower(w.Title), needle) {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}
	model.SortWindowsFocusedFirst(windows)

	res := output.WindowsResult{TS: time.Now().Unix(), Windows: windows}
	return mcp.NewToolResultText(toYAML(res)), nil
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	m := matcherParam(params)
	if err := m.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if err := s.driver.FocusWindow(&m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(toYAML(actionResult{OK: true, Action: "focus", Window: m.String()})), nil
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	m := matcherParam(params)
	if err := m.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := intParam(params, "depth", 0)
	maxNodes := intParam(params, "max_nodes", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, root, err := s.cache.ReadTree(s.driver.Resolver(), m)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap := model.Snapshot{
		Window:     w,
		CapturedAt: time.Now().UTC(),
		Tree:       model.BuildTree(*root, depth, maxNodes),
	}
	return mcp.NewToolResultText(toYAML(snap)), nil
}

func (s *Server) handleControls(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	m := matcherParam(params)
	if err := m.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	types := stringParam(params, "types", "")
	name := stringParam(params, "name", "")

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, root, err := s.cache.ReadTree(s.driver.Resolver(), m)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	controls := model.Flatten(*root)
	var typeList []string
	if types != "" {
		typeList = model.ExpandControlTypes(strings.Split(types, ","))
	}
	controls = model.FilterControls(controls, typeList, name)

	res := output.ControlsResult{Window: w, TS: time.Now().Unix(), Controls: controls}
	return mcp.NewToolResultText(toYAML(res)), nil
}

// resolveResult is the `resolve` tool's output: the element a selector
// names, without acting on it.
type resolveResult struct {
	OK      bool          `yaml:"ok"      json:"ok"`
	Window  model.Window  `yaml:"window"  json:"window"`
	Element model.Element `yaml:"element" json:"element"`
}

func (s *Server) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	sel, err := selectorParam(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if sel == nil {
		return mcp.NewToolResultError("resolve needs at least one of auto_id, control_type, name, name_regex, index"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, root, err := s.cache.ReadTree(s.driver.Resolver(), sel.Window)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	el, err := s.driver.Resolver().ResolveIn(root, sel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	found := *el
	found.Children = nil
	return mcp.NewToolResultText(toYAML(resolveResult{OK: true, Window: w, Element: found})), nil
}

func (s *Server) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := 1
	if boolParam(params, "double", false) {
		count = 2
	}
	sel, err := selectorParam(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	// Engine click steps are left single clicks; other buttons and
	// double clicks go straight to the inputter.
	if button != platform.MouseLeft || count > 1 {
		cx, cy := x, y
		if sel != nil {
			el, resolveErr := s.driver.ResolveSelector(sel)
			if resolveErr != nil {
				return mcp.NewToolResultError(resolveErr.Error()), nil
			}
			cx, cy = el.Rect.Center()
		} else if x == 0 && y == 0 {
			return mcp.NewToolResultError("click needs a selector or x/y coordinates"), nil
		}
		if clickErr := s.driver.ClickAt(cx, cy, button, count); clickErr != nil {
			return mcp.NewToolResultError(clickErr.Error()), nil
		}
		s.cache.InvalidateAll()
		return mcp.NewToolResultText(toYAML(actionResult{OK: true, Action: "click"})), nil
	}

	sr, err := s.runOneStep(macro.Step{Action: macro.ActionClick, Selector: sel, X: x, Y: y})
	if err != nil {
		return mcp.NewToolResultError(toYAML(sr)), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(toYAML(sr)), nil
}

func (s *Server) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	enter := boolParam(params, "enter", false)
	sel, err := selectorParam(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	sr, err := s.runOneStep(macro.Step{Action: macro.ActionType, Selector: sel, Text: text, Enter: enter})
	if err != nil {
		return mcp.NewToolResultError(toYAML(sr)), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(toYAML(sr)), nil
}

func (s *Server) handleKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	keys := stringParam(params, "keys", "")
	if keys == "" {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}
	m := matcherParam(params)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if hasMatcher(m) {
		if err := m.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.driver.FocusWindow(&m); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	sr, err := s.runOneStep(macro.Step{Action: macro.ActionKey, Key: keys})
	if err != nil {
		return mcp.NewToolResultError(toYAML(sr)), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(toYAML(sr)), nil
}

func (s *Server) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	m := matcherParam(params)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.Screenshotter == nil {
		return mcp.NewToolResultError("screenshot not supported on this platform"), nil
	}

	var img image.Image
	var err error
	if hasMatcher(m) {
		if err = m.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var w model.Window
		w, err = s.driver.Resolver().FindWindow(m)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		img, err = s.provider.Screenshotter.CaptureWindow(w)
	} else {
		img, err = s.provider.Screenshotter.CaptureScreen()
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleRunSteps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stepsRaw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}
	b, err := json.Marshal(arr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var steps []macro.Step
	if err := json.Unmarshal(b, &steps); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse steps: %s", err)), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	eng := macro.NewEngine(s.driver, nil)
	eng.Logger = s.logger
	res, err := eng.Run(steps)
	s.cache.InvalidateAll()
	if err != nil {
		return mcp.NewToolResultError(toYAML(res)), nil
	}
	return mcp.NewToolResultText(toYAML(res)), nil
}
