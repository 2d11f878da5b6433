package repos

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	colUsers    = "users"
	colSessions = "sessions"
	colGuests   = "guest_sessions"
	colProducts = "products"
	colOrders   = "orders"
	colOTPs     = "otps"
)

const (
	guestTTL   = 24 * time.Hour
	sessionTTL = 20 * 24 * time.Hour
)

func Open(ctx context.Context, url, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureIndexes creates the unique and TTL indexes the stores depend on.
// Safe to run on every start.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	ttl := func(seconds int32) *options.IndexOptions {
		return options.Index().SetExpireAfterSeconds(seconds)
	}

	_, err := db.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(colOTPs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(colGuests).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}, Options: ttl(int32(guestTTL / time.Second))},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(colSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: ttl(int32(sessionTTL / time.Second)),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(colOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}
