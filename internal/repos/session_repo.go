package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shoecrew/internal/domain"
)

// SessionRepo holds carts of logged-in users. The session record id is
// what the sid cookie carries; the sessionId field inside the document
// is the owning user's id.
type SessionRepo struct{ c *mongo.Collection }

func NewSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{c: db.Collection(colSessions)}
}

func (r *SessionRepo) Insert(ctx context.Context, s *domain.Session) (primitive.ObjectID, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := r.c.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	s.ID = id
	return id, nil
}

func (r *SessionRepo) ByID(ctx context.Context, sid string) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(sid)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var s domain.Session
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) SaveCart(ctx context.Context, sid string, cart []domain.CartEntry) error {
	oid, err := primitive.ObjectIDFromHex(sid)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if cart == nil {
		cart = []domain.CartEntry{}
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"cart": cart}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	oid, err := primitive.ObjectIDFromHex(sid)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	_, err = r.c.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
