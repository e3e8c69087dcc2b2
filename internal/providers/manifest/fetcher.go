package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/resilience"
)

// DefaultURL is the published location of the add-in manifest
const DefaultURL = "https://ex.optivise.app/manifest.xml"

// Marker must appear in every valid manifest
const Marker = "<OfficeApp"

// Config configures the fetcher
type Config struct {
	Timeout        time.Duration
	MaxBytes       int64
	UserAgent      string
	BreakerEnabled bool
	// BreakerThreshold is the number of consecutive failures that opens the breaker
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

// DefaultConfig returns production fetcher settings
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		MaxBytes:         1 << 20,
		UserAgent:        "Optivise-Installer/1.0",
		BreakerEnabled:   true,
		BreakerThreshold: 5,
		BreakerCooldown:  30 * time.Second,
	}
}

// Fetcher downloads manifests
type Fetcher struct {
	client   *resty.Client
	breaker  *resilience.Breaker
	maxBytes int64
	logger   *logging.Logger
}

// NewFetcher creates a fetcher with a single-attempt resty client
func NewFetcher(cfg Config, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("manifest")

	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaults.MaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	// Pooled transport only; retry policy belongs to the caller.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1").
		SetTransport(retryClient.HTTPClient.Transport)

	f := &Fetcher{
		client:   client,
		maxBytes: cfg.MaxBytes,
		logger:   logger,
	}

	if cfg.BreakerEnabled {
		threshold := cfg.BreakerThreshold
		if threshold == 0 {
			threshold = defaults.BreakerThreshold
		}
		f.breaker = resilience.New("manifest-endpoint", resilience.Settings{
			Timeout: cfg.BreakerCooldown,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsFailure:  tripsBreaker,
			IsExcluded: isCallerAbort,
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		})
	}

	return f
}

// Fetch downloads url once and returns the validated manifest bytes
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	var body []byte
	call := func() error {
		var err error
		body, err = f.download(ctx, url)
		if err != nil && ctx.Err() != nil {
			return &callerAbort{err: err}
		}
		return err
	}

	var err error
	if f.breaker != nil {
		err = f.breaker.Do(call)
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			err = networkError(url, fmt.Errorf("manifest endpoint unavailable: %w", err))
		}
	} else {
		err = call()
	}
	var abort *callerAbort
	if errors.As(err, &abort) {
		err = abort.err
	}
	if err != nil {
		f.logger.Warn("manifest download failed",
			zap.String("url", url),
			zap.Stringer("kind", KindOf(err)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := validate(url, body); err != nil {
		fields := []zap.Field{zap.String("url", url), zap.Error(err)}
		if title := pageTitle(body); title != "" {
			fields = append(fields, zap.String("page_title", title))
		}
		f.logger.Warn("manifest rejected", fields...)
		return nil, err
	}

	f.logger.Debug("manifest downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

// BreakerState reports the endpoint breaker state, closed when disabled
func (f *Fetcher) BreakerState() resilience.State {
	if f.breaker == nil {
		return resilience.StateClosed
	}
	return f.breaker.State()
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, networkError(url, err)
	}

	raw := resp.RawBody()
	if raw != nil {
		defer raw.Close()
	}

	if !resp.IsSuccess() {
		return nil, statusError(url, resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}
	if raw == nil {
		return nil, readError(url, errors.New("empty response"))
	}

	data, err := io.ReadAll(io.LimitReader(raw, f.maxBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, networkError(url, ctxErr)
		}
		if isTimeout(err) {
			return nil, networkError(url, err)
		}
		return nil, readError(url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, readError(url, fmt.Errorf("manifest exceeds %d bytes", f.maxBytes))
	}

	text, err := decodeText(data, resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, readError(url, err)
	}
	return text, nil
}

// decodeText converts the body to UTF-8 using the declared or sniffed charset
func decodeText(data []byte, contentType string) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	if m := mimetype.Detect(data); !isText(m) {
		return nil, fmt.Errorf("response body is not text (detected %s)", m.String())
	}

	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %q%s: %w", contentType, describeCharset(data), err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %q%s: %w", contentType, describeCharset(data), err)
	}
	if !utf8.Valid(text) {
		return nil, fmt.Errorf("response body is not valid UTF-8%s", describeCharset(data))
	}
	return text, nil
}

// describeCharset names the most likely charset of an undecodable body
func describeCharset(data []byte) string {
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil || best.Charset == "" {
		return ""
	}
	return fmt.Sprintf(" (looks like %s)", best.Charset)
}

func validate(url string, body []byte) error {
	if bytes.Contains(body, []byte(Marker)) {
		return nil
	}
	detected := ""
	if len(body) > 0 {
		detected = strings.SplitN(mimetype.Detect(body).String(), ";", 2)[0]
	}
	return validationError(url, detected)
}

// pageTitle returns the <title> of an HTML body, such as a captive portal
// or CDN error page served in place of the manifest
func pageTitle(body []byte) string {
	if !mimetype.Detect(body).Is("text/html") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// callerAbort marks a failure caused by the caller's own context ending.
// It never counts against the endpoint.
type callerAbort struct {
	err error
}

func (a *callerAbort) Error() string { return a.err.Error() }

func (a *callerAbort) Unwrap() error { return a.err }

func isCallerAbort(err error) bool {
	var abort *callerAbort
	return errors.As(err, &abort)
}

// tripsBreaker counts only endpoint-side failures against the breaker
func tripsBreaker(err error) bool {
	if isCallerAbort(err) {
		return false
	}
	var fe *Error
	if !errors.As(err, &fe) {
		return err != nil
	}
	switch fe.Kind {
	case KindNetwork:
		return !errors.Is(err, context.Canceled)
	case KindHTTPStatus:
		return fe.StatusCode >= 500
	default:
		return false
	}
}
