// Package server exposes the desktop automation surface over the Model
// Context Protocol, so agents can list windows, resolve selectors, and
// drive input without shelling out to the CLI per action.
package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hfwin/handsfree/internal/macro"
	"github.com/hfwin/handsfree/internal/platform"
	"github.com/hfwin/handsfree/internal/selector"
	"github.com/hfwin/handsfree/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Ambiguity selector.Ambiguity
	Logger    *slog.Logger
}

// Server wraps the MCP server with the platform provider and tree cache.
// providerMu serializes tool calls; the desktop is a shared mutable
// resource and interleaved reads and clicks corrupt each other.
type Server struct {
	provider   *platform.Provider
	driver     *macro.LiveDriver
	cache      *TreeCache
	providerMu sync.Mutex
	logger     *slog.Logger
	mcp        *mcpserver.MCPServer
}

// New creates and configures an MCP server with all handsfree tools.
func New(cfg Config) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return newWithProvider(cfg, provider), nil
}

// newWithProvider lets tests inject a fake provider.
func newWithProvider(cfg Config, provider *platform.Provider) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		provider: provider,
		driver:   macro.NewLiveDriver(provider, selector.ResolveOptions{Ambiguity: cfg.Ambiguity}),
		cache:    NewTreeCache(cfg.CacheTTL),
		logger:   logger,
	}
	s.mcp = mcpserver.NewMCPServer(
		"handsfree",
		version.Version,
	)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List visible top-level windows, frontmost first. Returns title, class name, pid, focus state, and bounds."),
			mcp.WithString("title", mcp.Description("Filter by case-insensitive title substring")),
		),
		s.handleWindows,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Bring a window to the foreground"),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
		),
		s.handleFocus,
	)

	// tree
	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Read a window's UI Automation element tree: names, control types, automation IDs, and bounds"),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
			mcp.WithNumber("max_nodes", mcp.Description("Max nodes in output (0 = unlimited)")),
		),
		s.handleTree,
	)

	// controls
	s.mcp.AddTool(
		mcp.NewTool("controls",
			mcp.WithDescription("List a window's controls as a flat table with path breadcrumbs, filterable by control type and name"),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
			mcp.WithString("types", mcp.Description("Comma-separated control types or groups (e.g. 'Button,Edit' or 'interactive')")),
			mcp.WithString("name", mcp.Description("Filter by case-insensitive name substring")),
		),
		s.handleControls,
	)

	// resolve
	s.mcp.AddTool(
		mcp.NewTool("resolve",
			mcp.WithDescription("Dry-run a selector: find the element it names and return its properties without acting on it"),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
			mcp.WithString("auto_id", mcp.Description("Automation ID to match")),
			mcp.WithString("control_type", mcp.Description("Control type to match (e.g. 'Button')")),
			mcp.WithString("name", mcp.Description("Exact element name to match")),
			mcp.WithString("name_regex", mcp.Description("Regular expression matched against element names")),
			mcp.WithNumber("index", mcp.Description("Pick the Nth match in depth-first order (0-based)")),
		),
		s.handleResolve,
	)

	// click
	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click a UI element by selector, or a screen point. Selector clicks prefer the element's Invoke pattern and fall back to clicking its center."),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
			mcp.WithString("auto_id", mcp.Description("Automation ID to match")),
			mcp.WithString("control_type", mcp.Description("Control type to match")),
			mcp.WithString("name", mcp.Description("Exact element name to match")),
			mcp.WithString("name_regex", mcp.Description("Regular expression matched against element names")),
			mcp.WithNumber("index", mcp.Description("Pick the Nth match (0-based)")),
			mcp.WithNumber("x", mcp.Description("Click at X coordinate (with y, instead of a selector)")),
			mcp.WithNumber("y", mcp.Description("Click at Y coordinate")),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle (default: left)")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
		),
		s.handleClick,
	)

	// type
	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text, optionally into a specific element. Prefers the element's Value pattern; with enter, focuses the element and types for real so the key lands in it."),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithBoolean("enter", mcp.Description("Press Enter after the text")),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive)")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
			mcp.WithString("auto_id", mcp.Description("Automation ID of the target element")),
			mcp.WithString("control_type", mcp.Description("Control type of the target element")),
			mcp.WithString("name", mcp.Description("Exact name of the target element")),
			mcp.WithString("name_regex", mcp.Description("Regular expression matched against element names")),
			mcp.WithNumber("index", mcp.Description("Pick the Nth match (0-based)")),
		),
		s.handleType,
	)

	// key
	s.mcp.AddTool(
		mcp.NewTool("key",
			mcp.WithDescription("Press a key or key combination (e.g. 'enter', 'ctrl+s', 'alt+f4'). Optionally focus a window first."),
			mcp.WithString("keys", mcp.Description("Key or +-joined combination"), mcp.Required()),
			mcp.WithString("title", mcp.Description("Focus this window before pressing (exact title)")),
			mcp.WithString("title_regex", mcp.Description("Focus window matched by regex first")),
			mcp.WithString("class_name", mcp.Description("Focus window matched by class first")),
		),
		s.handleKey,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a window or the entire screen as a PNG image"),
			mcp.WithString("title", mcp.Description("Exact window title (case-insensitive); omit for full screen")),
			mcp.WithString("title_regex", mcp.Description("Regular expression matched against window titles")),
			mcp.WithString("class_name", mcp.Description("Win32 window class name")),
		),
		s.handleScreenshot,
	)

	// run_steps
	s.mcp.AddTool(
		mcp.NewTool("run_steps",
			mcp.WithDescription("Execute macro steps sequentially, stopping at the first failure. Steps use the macro document schema: action (focus, click, type, sleep, key, scroll), selector_candidates, text, enter, key, seconds, amount, x, y, timeout."),
			mcp.WithArray("steps", mcp.Description("Array of step objects"), mcp.Required()),
		),
		s.handleRunSteps,
	)
}
