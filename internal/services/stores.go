package services

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shoecrew/internal/domain"
)

// Failure taxonomy. Handlers map these onto HTTP statuses; everything
// else is an upstream failure.
var (
	ErrBadCreds        = errors.New("invalid email or password")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadAdminRef     = errors.New("invalid adminId")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoSession       = errors.New("no session found")
	ErrSessionNotFound = errors.New("session not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotOwner        = errors.New("not the owning admin")
	ErrNotFound        = errors.New("not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrOTPNotFound     = errors.New("otp expired or not found")
	ErrOTPMismatch     = errors.New("invalid otp")
)

func notFound(err error) bool { return errors.Is(err, mongo.ErrNoDocuments) }

type UserStore interface {
	Insert(ctx context.Context, u *domain.User) (primitive.ObjectID, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	AdminExists(ctx context.Context, id string) (bool, error)
}

type SessionStore interface {
	Insert(ctx context.Context, s *domain.Session) (primitive.ObjectID, error)
	ByID(ctx context.Context, sid string) (*domain.Session, error)
	SaveCart(ctx context.Context, sid string, cart []domain.CartEntry) error
	Delete(ctx context.Context, sid string) error
}

type GuestStore interface {
	Insert(ctx context.Context, g *domain.GuestSession) error
	BySessionID(ctx context.Context, gid string) (*domain.GuestSession, error)
	SaveCart(ctx context.Context, gid string, cart []domain.CartEntry) error
	Delete(ctx context.Context, gid string) error
}

type ProductStore interface {
	Insert(ctx context.Context, p *domain.Product) (primitive.ObjectID, error)
	ByID(ctx context.Context, id string) (*domain.Product, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error)
	All(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *domain.Order) (primitive.ObjectID, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	PendingPayment(ctx context.Context) ([]domain.Order, error)
	MarkDelivered(ctx context.Context, id string) (*domain.Order, error)
}

type OTPStore interface {
	Upsert(ctx context.Context, email, code string) error
	ByEmail(ctx context.Context, email string) (*domain.OTP, error)
	Delete(ctx context.Context, email string) error
}

// OrderLine is a resolved order item handed to the mailer for rendering.
type OrderLine struct {
	Title    string
	Quantity int
	Price    float64
}

type Mailer interface {
	SendOrderMail(order *domain.Order, lines []OrderLine, to ...string) error
	SendOTPMail(to, code string) error
}

// TokenVerifier validates a third-party identity assertion and returns
// the verified email and display name.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (email, name string, err error)
}

// BlobStore is the external object storage for product images.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}
