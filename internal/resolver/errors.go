package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork tags timeouts and connection failures.
	ErrNetwork = errors.New("network error")
	// ErrParse tags responses whose shape matched no known pattern.
	ErrParse = errors.New("parse error")
	// ErrAuthentication tags aggregator login failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrCatalogNotFound tags a completed aggregator search with no matching row.
	ErrCatalogNotFound = errors.New("not found in catalog")
	// ErrRenderTimeout tags asynchronous result loads that never completed.
	ErrRenderTimeout = errors.New("results render timeout")
	// ErrExtraction tags a matched row whose detail page yielded no platforms.
	ErrExtraction = errors.New("extraction failed")
)

// Wrap builds an error that includes component context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureCategory maps an aggregator error to the short label reported to
// operators. Unknown errors fall back to "extraction-exception".
func FailureCategory(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthentication):
		return "login-failure"
	case errors.Is(err, ErrCatalogNotFound):
		return "catalog-not-found"
	case errors.Is(err, ErrRenderTimeout):
		return "results-render-timeout"
	case errors.Is(err, ErrExtraction):
		return "zero-platforms-extracted"
	case errors.Is(err, ErrNetwork):
		return "network-failure"
	default:
		return "extraction-exception"
	}
}

// Recoverable reports whether the shared aggregator session may be reused
// after this error. Authentication and network failures poison the session;
// an unmatched catalog search does not.
func Recoverable(err error) bool {
	return errors.Is(err, ErrCatalogNotFound) || errors.Is(err, ErrExtraction)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "resolver failure"
	}
	return strings.Join(parts, ": ")
}
