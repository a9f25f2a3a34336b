package pdfrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ErrInvalidContent is returned when the input is neither an HTML string
// nor a path to an existing file.
var ErrInvalidContent = errors.New("content must be an HTML string or an existing file path")

const (
	// A4 landscape viewport at 96dpi, rendered at 2x for crisp output.
	viewportWidth  = 1123
	viewportHeight = 794
	deviceScale    = 2.0

	// Extra settle time for late CSS and font layout after fonts report ready.
	fontSettleDelay = 800 * time.Millisecond

	defaultPageTimeout = 60 * time.Second
)

// Renderer converts certificate HTML into PDF bytes using a headless
// Chrome instance launched per call. The browser is always torn down on
// every exit path, success or failure.
type Renderer struct {
	PageTimeout time.Duration
	Signer      *Signer
}

func New(signer *Signer) *Renderer {
	return &Renderer{
		PageTimeout: defaultPageTimeout,
		Signer:      signer,
	}
}

// RenderPDF loads the content, waits for network idle and font loading,
// and prints an A4 landscape PDF with backgrounds and no margins. When
// outputPath is non-empty the bytes are also written to disk, creating
// parent directories as needed.
func (r *Renderer) RenderPDF(ctx context.Context, htmlContent string, outputPath string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := r.PageTimeout
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	loadAction, err := contentAction(htmlContent)
	if err != nil {
		return nil, err
	}

	var pdfBytes []byte
	tasks := chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(viewportWidth, viewportHeight, deviceScale, false),
		loadAction,
		waitForFonts(),
		chromedp.Sleep(fontSettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPrintBackground(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBytes = buf
			return nil
		}),
	}

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}

	if r.Signer != nil {
		signed, signErr := r.Signer.Sign(pdfBytes)
		if signErr != nil {
			slog.Warn("PDF signing failed, keeping unsigned output", "error", signErr)
		} else {
			pdfBytes = signed
		}
	}

	if outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
			return nil, fmt.Errorf("write pdf: %w", err)
		}
	}

	return pdfBytes, nil
}

// contentAction classifies the input as raw HTML or a file path and
// returns the chromedp action that loads it.
func contentAction(htmlContent string) (chromedp.Action, error) {
	trimmed := strings.TrimSpace(htmlContent)

	if strings.HasPrefix(trimmed, "<") {
		return chromedp.Tasks{
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				frameTree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
			}),
			chromedp.WaitReady("body", chromedp.ByQuery),
		}, nil
	}

	if _, err := os.Stat(htmlContent); err == nil {
		abs, absErr := filepath.Abs(htmlContent)
		if absErr != nil {
			return nil, absErr
		}
		return chromedp.Tasks{
			chromedp.Navigate("file://" + abs),
			chromedp.WaitReady("body", chromedp.ByQuery),
		}, nil
	}

	return nil, ErrInvalidContent
}

// waitForFonts blocks until the document font set finishes loading.
func waitForFonts() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_, exp, err := runtime.Evaluate(`document.fonts.ready.then(() => true)`).
			WithAwaitPromise(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return exp
		}
		return nil
	})
}
