package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pdfdesk/internal/process"
)

// measureJS returns the extent of the body box and its overflow. The root
// element is not measured: its scroll size never drops below the viewport,
// so empty content would not be detected.
const measureJS = `() => {
	const b = document.body;
	if (!b) return { width: 0, height: 0 };
	const r = b.getBoundingClientRect();
	if (r.width === 0 && r.height === 0) return { width: 0, height: 0 };
	return {
		width: Math.ceil(Math.max(b.scrollWidth, r.right + window.scrollX)),
		height: Math.ceil(Math.max(b.scrollHeight, r.bottom + window.scrollY)),
	};
}`

// fontsReadyJS resolves once web fonts have loaded.
const fontsReadyJS = `() => document.fonts ? document.fonts.ready.then(() => true) : true`

// BrowserConfig controls how the headless browser is launched.
type BrowserConfig struct {
	Bin       string // browser binary; empty lets rod find or download Chromium
	NoSandbox bool   // required in most containers and CI runners
}

// BrowserConfigFromEnv reads ROD_BROWSER_BIN, ROD_NO_SANDBOX and CI.
// A nil getenv uses os.Getenv.
func BrowserConfigFromEnv(getenv func(string) string) BrowserConfig {
	if getenv == nil {
		getenv = os.Getenv
	}
	bin := getenv("ROD_BROWSER_BIN")
	return BrowserConfig{
		Bin:       bin,
		NoSandbox: bin != "" || getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") != "",
	}
}

// BrowserFactory is a SurfaceFactory backed by one headless Chrome process.
// The browser is launched on the first NewSurface call.
type BrowserFactory struct {
	cfg BrowserConfig

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	closed   bool
}

// NewBrowserFactory creates a BrowserFactory with the given launch configuration.
func NewBrowserFactory(cfg BrowserConfig) *BrowserFactory {
	return &BrowserFactory{cfg: cfg}
}

// ensureBrowser lazily launches and connects to the browser. Caller holds mu.
func (f *BrowserFactory) ensureBrowser() error {
	if f.browser != nil {
		return nil
	}

	l := launcher.New()
	if f.cfg.Bin != "" {
		l = l.Bin(f.cfg.Bin)
	}
	if f.cfg.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	f.launcher = l
	f.browser = browser
	return nil
}

// NewSurface opens an incognito context with one page sized to vp.
func (f *BrowserFactory) NewSurface(ctx context.Context, vp Viewport) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFactoryClosed
	}
	if err := f.ensureBrowser(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	browser := f.browser
	f.mu.Unlock()

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("%w: incognito context: %v", ErrSurfaceCreate, err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("%w: page: %v", ErrSurfaceCreate, err)
	}

	s := &rodSurface{context: incognito, page: page}
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: viewport: %v", ErrSurfaceCreate, err)
	}
	return s, nil
}

// Close shuts the browser down and kills its process group.
func (f *BrowserFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.browser == nil {
		return nil
	}

	err := f.browser.Close()
	if pid := f.launcher.PID(); pid > 0 {
		_ = process.KillGroup(pid)
	}
	f.launcher.Kill()
	f.launcher.Cleanup()

	f.browser = nil
	f.launcher = nil
	return err
}

// rodSurface is a page inside its own incognito browser context.
type rodSurface struct {
	context *rod.Browser
	page    *rod.Page

	once     sync.Once
	closeErr error
}

// SetDocument loads html into the page and waits for load and web fonts.
func (s *rodSurface) SetDocument(ctx context.Context, html string) error {
	page := s.page.Context(ctx)
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	if _, err := page.Eval(fontsReadyJS); err != nil {
		return fmt.Errorf("%w: fonts: %v", ErrDocumentLoad, err)
	}
	return nil
}

// Measure returns the document scroll size.
func (s *rodSurface) Measure(ctx context.Context) (Size, error) {
	res, err := s.page.Context(ctx).Eval(measureJS)
	if err != nil {
		return Size{}, err
	}
	return Size{
		Width:  res.Value.Get("width").Int(),
		Height: res.Value.Get("height").Int(),
	}, nil
}

// Screenshot captures clip beyond the viewport at the given scale.
func (s *rodSurface) Screenshot(ctx context.Context, clip Rect, scale float64) ([]byte, error) {
	return s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      float64(clip.X),
			Y:      float64(clip.Y),
			Width:  float64(clip.Width),
			Height: float64(clip.Height),
			Scale:  scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
}

// Close closes the page and disposes of its browser context.
func (s *rodSurface) Close() error {
	s.once.Do(func() {
		s.closeErr = errors.Join(s.page.Close(), s.context.Close())
	})
	return s.closeErr
}

// Compile-time interface checks.
var (
	_ SurfaceFactory = (*BrowserFactory)(nil)
	_ Surface        = (*rodSurface)(nil)
)
