// Package manifest downloads and validates the Optivise add-in manifest.
//
// A fetch is exactly one GET. There are no internal retries: the caller sees
// the failure kind and decides whether to try again.
//
// Failure kinds:
//   - KindNetwork: transport failure, cancellation, timeout or open breaker
//   - KindHTTPStatus: non-2xx response, message carries the status code
//   - KindRead: body unreadable, oversized or not text
//   - KindValidation: text without the <OfficeApp root marker
//
// Built on go-resty/resty over the pooled transport from go-retryablehttp,
// with golang.org/x/net/html/charset for body decoding and mimetype for
// content sniffing.
//
// Example Usage:
//
//	f := manifest.NewFetcher(manifest.DefaultConfig(), logger)
//	body, err := f.Fetch(ctx, manifest.DefaultURL)
package manifest
