package repositories

import (
	"context"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// ProfileReader exposes the account store's user and exchange-profile records
// as read-only inputs. The tracker never validates or mutates them.
//
// FindExchangeProfileByUserID returns apperrors.ErrNotFound when the user has
// no exchange profile; callers must handle the absent case explicitly instead
// of assuming every user has one.
type ProfileReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindExchangeProfileByUserID(ctx context.Context, userID string) (*domain.ExchangeProfile, error)
}
