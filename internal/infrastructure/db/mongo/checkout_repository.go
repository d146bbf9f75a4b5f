package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

const collectionCheckouts = "checkout_sessions"

// CheckoutRepository keeps one document per created checkout session.
type CheckoutRepository struct {
	col *mongo.Collection
}

func NewCheckoutRepository(db *mongo.Database) *CheckoutRepository {
	return &CheckoutRepository{col: db.Collection(collectionCheckouts)}
}

func (r *CheckoutRepository) Insert(ctx context.Context, s *domain.CheckoutSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *CheckoutRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.CheckoutSession
	if err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckoutNotFound
		}
		return nil, err
	}
	return &s, nil
}

// MarkReturned records that the buyer reached the success page. The payment
// status is left untouched.
func (r *CheckoutRepository) MarkReturned(ctx context.Context, sessionID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"stage": domain.CheckoutReturned, "returned_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCheckoutNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the lookups above.
func (r *CheckoutRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
