package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// SellerNotifier tells a seller that a buyer came back from checkout.
// Delivery is best effort.
type SellerNotifier interface {
	CheckoutReturned(ctx context.Context, seller *domain.User, session *domain.CheckoutSession) error
}
