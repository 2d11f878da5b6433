package repos

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoecrew/internal/domain"
)

type OTPRepo struct{ c *mongo.Collection }

func NewOTPRepo(db *mongo.Database) *OTPRepo {
	return &OTPRepo{c: db.Collection(colOTPs)}
}

// Upsert replaces any prior code for the email so only the most recent
// one is ever valid.
func (r *OTPRepo) Upsert(ctx context.Context, email, code string) error {
	email = strings.ToLower(email)
	_, err := r.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"otp": code, "createdAt": time.Now().UTC()}},
		options.Update().SetUpsert(true))
	return err
}

func (r *OTPRepo) ByEmail(ctx context.Context, email string) (*domain.OTP, error) {
	var o domain.OTP
	err := r.c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OTPRepo) Delete(ctx context.Context, email string) error {
	_, err := r.c.DeleteOne(ctx, bson.M{"email": strings.ToLower(email)})
	return err
}
