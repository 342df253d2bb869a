package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/dgrunert/antwort/internal/models"
)

// kindForStatus maps an HTTP status from the service to an error kind.
func kindForStatus(status int) models.ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return models.ErrUnauthorized
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusTooManyRequests:
		return models.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return models.ErrTimeout
	default:
		return models.ErrTransport
	}
}

// mapTransportError classifies non-HTTP failures (DNS, refused connections,
// timeouts) into the typed error model. Context cancellation passes through
// untouched so the caller's cancellation semantics stay intact.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.WrapGenerationError(models.ErrTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.WrapGenerationError(models.ErrNoConnectivity, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return models.WrapGenerationError(models.ErrTimeout, err)
		}
		return models.WrapGenerationError(models.ErrNoConnectivity, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.WrapGenerationError(models.ErrTransport, err)
	}

	return models.WrapGenerationError(models.ErrUnexpected, err)
}
