package browser

import (
	"context"
	"fmt"
)

// Driver adapts a Session to the macro engine's browser interface. The
// session starts lazily on the first browser step: a macro with no
// browser steps never launches Chrome.
type Driver struct {
	cfg  Config
	ctx  context.Context
	sess *Session
}

// NewDriver builds a lazy driver. Close releases the session if one was
// started.
func NewDriver(ctx context.Context, cfg Config) *Driver {
	return &Driver{cfg: cfg, ctx: ctx}
}

// Close shuts down the session started by the driver, if any.
func (d *Driver) Close() error {
	if d.sess == nil {
		return nil
	}
	err := d.sess.Close()
	d.sess = nil
	return err
}

// ensure returns the running session, starting one on the named profile.
// An empty name falls back to the last recorded profile.
func (d *Driver) ensure(profile string) (*Session, error) {
	if d.sess != nil {
		return d.sess, nil
	}
	cfg := d.cfg
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	if profile == "" {
		profile = LoadState(cfg.Home).Browser
	}
	sess, err := Start(cfg, profile)
	if err != nil {
		return nil, err
	}
	d.sess = sess
	return sess, nil
}

func (d *Driver) Open(browser, url string) error {
	sess, err := d.ensure(browser)
	if err != nil {
		return err
	}
	_, err = sess.Navigate(d.ctx, url)
	return err
}

func (d *Driver) Navigate(url string) error {
	sess, err := d.ensure("")
	if err != nil {
		return err
	}
	_, err = sess.Navigate(d.ctx, url)
	return err
}

func (d *Driver) Click(css, text string) error {
	sess, err := d.ensure("")
	if err != nil {
		return err
	}
	if _, err := sess.Click(d.ctx, css, text); err != nil {
		return fmt.Errorf("click %s: %w", clickTargetDesc(css, text), err)
	}
	return nil
}

func (d *Driver) Type(css, text string, enter bool) error {
	sess, err := d.ensure("")
	if err != nil {
		return err
	}
	_, err = sess.Type(d.ctx, css, text, enter)
	return err
}

func clickTargetDesc(css, text string) string {
	if css != "" {
		return fmt.Sprintf("%q", css)
	}
	return fmt.Sprintf("text %q", text)
}
