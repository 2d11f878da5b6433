package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoecrew/internal/domain"
)

type OrderRepo struct{ c *mongo.Collection }

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{c: db.Collection(colOrders)}
}

func (r *OrderRepo) Insert(ctx context.Context, o *domain.Order) (primitive.ObjectID, error) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	res, err := r.c.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	o.ID = id
	return id, nil
}

func (r *OrderRepo) ByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	cur, err := r.c.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []domain.Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingPayment is the admin fulfillment queue: orders still awaiting
// payment, newest first.
func (r *OrderRepo) PendingPayment(ctx context.Context) ([]domain.Order, error) {
	cur, err := r.c.Find(ctx, bson.M{"paymentStatus": domain.PaymentPending},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []domain.Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDelivered flips payment to PAID and order status to DELIVERED,
// returning the updated document.
func (r *OrderRepo) MarkDelivered(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var o domain.Order
	err = r.c.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"paymentStatus": domain.PaymentPaid,
			"orderStatus":   domain.OrderDelivered,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
