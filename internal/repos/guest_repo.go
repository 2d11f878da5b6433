package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shoecrew/internal/domain"
)

// GuestRepo holds anonymous carts keyed by the random gid cookie value.
// Records expire by TTL a day after creation.
type GuestRepo struct{ c *mongo.Collection }

func NewGuestRepo(db *mongo.Database) *GuestRepo {
	return &GuestRepo{c: db.Collection(colGuests)}
}

func (r *GuestRepo) Insert(ctx context.Context, g *domain.GuestSession) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Cart == nil {
		g.Cart = []domain.CartEntry{}
	}
	res, err := r.c.InsertOne(ctx, g)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = id
	}
	return nil
}

func (r *GuestRepo) BySessionID(ctx context.Context, gid string) (*domain.GuestSession, error) {
	var g domain.GuestSession
	if err := r.c.FindOne(ctx, bson.M{"sessionId": gid}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) SaveCart(ctx context.Context, gid string, cart []domain.CartEntry) error {
	if cart == nil {
		cart = []domain.CartEntry{}
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"sessionId": gid}, bson.M{"$set": bson.M{"cart": cart}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *GuestRepo) Delete(ctx context.Context, gid string) error {
	_, err := r.c.DeleteOne(ctx, bson.M{"sessionId": gid})
	return err
}
