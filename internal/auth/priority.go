package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jammyops/parceltrack/internal/models"
)

// PriorityIssuer hands out the static API key from config. No expiry: the key
// is rotated out-of-band.
type PriorityIssuer struct {
	APIKey string
}

func NewPriorityIssuer(apiKey string) *PriorityIssuer {
	return &PriorityIssuer{APIKey: apiKey}
}

func (i *PriorityIssuer) Carrier() string { return models.CarrierPriority }

func (i *PriorityIssuer) Issue(context.Context) (string, time.Duration, error) {
	if i.APIKey == "" {
		return "", 0, errors.Wrap(ErrIssuance, "priority api key is not configured")
	}
	return i.APIKey, 0, nil
}
