package rate

import (
	"context"
	"errors"
	"parcels/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Refresher interface {
	Refresh(ctx context.Context) (decimal.Decimal, error)
}

// RefreshUSDRate is the body of the periodic refresh job. Upstream failures are logged and
// swallowed so the next tick retries; only a failed cache write is returned.
func RefreshUSDRate(ctx context.Context, execID string, svc Refresher) error {
	log := logrus.WithField("exec_id", execID)

	rate, err := svc.Refresh(ctx)
	switch {
	case err == nil:
		log.WithField("rate", rate.StringFixed(domain.RateScale)).Info("USD rate refreshed")
		return nil
	case errors.Is(err, domain.ErrMalformedResponse):
		log.WithError(err).Warn("Rate source returned malformed data, keeping previous rate")
		return nil
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.WithError(err).Warn("Rate source is unavailable, keeping previous rate")
		return nil
	default:
		return err
	}
}
