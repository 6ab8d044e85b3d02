// Package browser drives a persistent-profile Chrome for the browser
// commands and browser-* macro steps. Profiles live under the handsfree
// home directory so login sessions survive between runs; a small state
// file remembers the last URL so follow-up commands resume on it.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config configures a browser session.
type Config struct {
	// Home overrides the state/profile root. Default: Home().
	Home string

	// Headless hides the browser window. Interactive commands default to
	// headful so the operator sees what the automation sees.
	Headless bool

	// Timeout bounds each navigation and element operation. Default 30s.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() error {
	if c.Home == "" {
		home, err := Home()
		if err != nil {
			return err
		}
		c.Home = home
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// PageInfo describes the page after an operation.
type PageInfo struct {
	URL   string `yaml:"url"   json:"url"`
	Title string `yaml:"title" json:"title"`
}

// Link is one harvested anchor.
type Link struct {
	Text string `yaml:"text" json:"text"`
	Href string `yaml:"href" json:"href"`
}

// Session is one connected browser over a named persistent profile.
type Session struct {
	cfg     Config
	profile string
	lnch    *launcher.Launcher
	browser *rod.Browser
}

// Start launches Chrome over the named profile and connects to it.
func Start(cfg Config, profile string) (*Session, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	if profile == "" {
		profile = DefaultProfile
	}
	dir, err := ProfileDir(cfg.Home, profile)
	if err != nil {
		return nil, err
	}

	l := launcher.New().UserDataDir(dir).Headless(cfg.Headless)
	if !cfg.Headless {
		l = l.Set("start-maximized")
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	cfg.Logger.Debug("browser started", "profile", profile, "headless", cfg.Headless)
	return &Session{cfg: cfg, profile: profile, lnch: l, browser: b}, nil
}

// Close shuts the browser down. The profile directory stays.
func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
	return err
}

// Profile reports the profile the session runs on.
func (s *Session) Profile() string { return s.profile }

// page returns the current page, creating one if the browser has none.
func (s *Session) page(ctx context.Context) (*rod.Page, error) {
	pages, err := s.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("browser: list pages: %w", err)
	}
	if len(pages) > 0 {
		return pages.First().Context(ctx), nil
	}
	p, err := s.browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	return p.Context(ctx), nil
}

// current returns the page after restoring the last saved URL when the
// session is on a blank tab.
func (s *Session) current(ctx context.Context) (*rod.Page, error) {
	p, err := s.page(ctx)
	if err != nil {
		return nil, err
	}
	info, err := p.Info()
	if err == nil && (info.URL == "" || info.URL == "about:blank") {
		if st := LoadState(s.cfg.Home); st.URL != "" {
			if err := s.goTo(p, st.URL); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func (s *Session) goTo(p *rod.Page, url string) error {
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		s.cfg.Logger.Warn("page load wait timed out", "url", url, "error", err)
	}
	return nil
}

// Navigate opens a URL on the current page and records it in the state
// file.
func (s *Session) Navigate(ctx context.Context, url string) (*PageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.page(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.goTo(p, url); err != nil {
		return nil, err
	}
	return s.finish(p)
}

// Click clicks the first element matching the CSS selector, or the first
// clickable element whose text matches when only text is given.
func (s *Session) Click(ctx context.Context, css, text string) (*PageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	var el *rod.Element
	switch {
	case css != "":
		el, err = p.Element(css)
	case text != "":
		el, err = p.ElementByJS(rod.Eval(findByTextJS, text))
	default:
		return nil, fmt.Errorf("browser: click needs a css selector or text")
	}
	if err != nil {
		return nil, fmt.Errorf("browser: find click target: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("browser: click: %w", err)
	}
	return s.finish(p)
}

// Type clears the matched field and types text into it, optionally
// pressing Enter afterwards.
func (s *Session) Type(ctx context.Context, css, text string, enter bool) (*PageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	el, err := p.Element(css)
	if err != nil {
		return nil, fmt.Errorf("browser: find input %q: %w", css, err)
	}
	// Replace existing content: Input writes over the selection.
	if err := el.SelectAllText(); err != nil {
		s.cfg.Logger.Debug("select-all before typing failed", "error", err)
	}
	if err := el.Input(text); err != nil {
		return nil, fmt.Errorf("browser: type: %w", err)
	}
	if enter {
		if err := el.Type(input.Enter); err != nil {
			return nil, fmt.Errorf("browser: press enter: %w", err)
		}
	}
	return s.finish(p)
}

// Snapshot serializes the current page. Formats: "aria" (role/name
// outline of the visible tree), "text" (body inner text), "html" (full
// document markup).
func (s *Session) Snapshot(ctx context.Context, format string) (*PageInfo, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, "", err
	}

	var js string
	switch format {
	case "", "aria":
		js = ariaOutlineJS
	case "text":
		js = `() => document.body.innerText`
	case "html":
		js = `() => document.documentElement.outerHTML`
	default:
		return nil, "", fmt.Errorf("browser: unknown snapshot format %q (expected aria, text, or html)", format)
	}

	res, err := p.Eval(js)
	if err != nil {
		return nil, "", fmt.Errorf("browser: snapshot: %w", err)
	}
	info, err := s.info(p)
	if err != nil {
		return nil, "", err
	}
	return info, res.Value.Str(), nil
}

// Screenshot captures the page to a PNG file.
func (s *Session) Screenshot(ctx context.Context, path string, fullPage bool) (*PageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	data, err := p.Screenshot(fullPage, nil)
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("browser: write screenshot: %w", err)
	}
	return s.info(p)
}

// Eval runs JavaScript on the current page and returns the result as
// JSON.
func (s *Session) Eval(ctx context.Context, js string) (*PageInfo, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, "", err
	}
	res, err := p.Eval(js)
	if err != nil {
		return nil, "", fmt.Errorf("browser: eval: %w", err)
	}
	raw, err := json.Marshal(res.Value)
	if err != nil {
		return nil, "", fmt.Errorf("browser: encode result: %w", err)
	}
	info, err := s.info(p)
	if err != nil {
		return nil, "", err
	}
	return info, string(raw), nil
}

// Links harvests the page's anchors, capped to keep output usable.
func (s *Session) Links(ctx context.Context) (*PageInfo, []Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	p, err := s.current(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := p.Eval(harvestLinksJS)
	if err != nil {
		return nil, nil, fmt.Errorf("browser: collect links: %w", err)
	}
	raw, err := json.Marshal(res.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("browser: encode links: %w", err)
	}
	var links []Link
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, nil, fmt.Errorf("browser: decode links: %w", err)
	}
	info, err := s.info(p)
	if err != nil {
		return nil, nil, err
	}
	return info, links, nil
}

// finish records the page's URL in the state file and reports it.
func (s *Session) finish(p *rod.Page) (*PageInfo, error) {
	info, err := s.info(p)
	if err != nil {
		return nil, err
	}
	if err := SaveState(s.cfg.Home, State{URL: info.URL, Browser: s.profile}); err != nil {
		s.cfg.Logger.Warn("could not save browser state", "error", err)
	}
	return info, nil
}

func (s *Session) info(p *rod.Page) (*PageInfo, error) {
	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("browser: page info: %w", err)
	}
	return &PageInfo{URL: info.URL, Title: strings.TrimSpace(info.Title)}, nil
}

// findByTextJS picks the most specific clickable element whose visible
// text matches, preferring exact matches.
const findByTextJS = `(text) => {
	const els = [...document.querySelectorAll(
		'a, button, [role=button], [role=link], [role=menuitem], ' +
		'input[type=button], input[type=submit], label, summary, [onclick]')];
	const label = (e) => ((e.innerText || e.value || '') + '').trim();
	return els.find(e => label(e) === text) ||
		els.find(e => label(e).includes(text)) ||
		null;
}`

// ariaOutlineJS renders an indented role/name outline of the visible DOM,
// close to what assistive tech would announce.
const ariaOutlineJS = `() => {
	const implicit = {
		a: 'link', button: 'button', input: 'textbox', select: 'combobox',
		textarea: 'textbox', h1: 'heading', h2: 'heading', h3: 'heading',
		h4: 'heading', h5: 'heading', h6: 'heading', nav: 'navigation',
		main: 'main', header: 'banner', footer: 'contentinfo', form: 'form',
		img: 'img', table: 'table', li: 'listitem', ul: 'list', ol: 'list',
	};
	const lines = [];
	const visit = (el, depth) => {
		if (depth > 12 || lines.length > 2000) return;
		const style = getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return;
		const role = el.getAttribute('role') || implicit[el.tagName.toLowerCase()];
		if (role) {
			let name = el.getAttribute('aria-label') ||
				(el.tagName === 'INPUT' ? (el.placeholder || el.value || '') : '') ||
				(el.innerText || '').trim().split('\n')[0];
			if (name.length > 80) name = name.slice(0, 77) + '...';
			lines.push('  '.repeat(depth) + role + (name ? ' "' + name + '"' : ''));
			depth++;
		}
		for (const child of el.children) visit(child, depth);
	};
	visit(document.body, 0);
	return lines.join('\n');
}`

// harvestLinksJS collects up to 200 labeled anchors.
const harvestLinksJS = `() => {
	return Array.from(document.querySelectorAll('a[href]'))
		.map(a => ({text: a.innerText.trim(), href: a.href}))
		.filter(l => l.text && l.href)
		.slice(0, 200);
}`
