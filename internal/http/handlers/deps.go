package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"shoecrew/internal/config"
	"shoecrew/internal/repos"
	"shoecrew/internal/services"
)

// Deps wires stores into services into handlers. Mail, blob storage and
// the token verifier are constructed once by the caller and injected.
type Deps struct {
	Auth   *services.AuthService
	AuthH  *AuthHandler
	GuestH *GuestHandler
	CartH  *CartHandler
	ProdH  *ProductHandler
	OrderH *OrderHandler
}

func NewDeps(db *mongo.Database, cfg config.Config, mailer services.Mailer, blobs services.BlobStore, verifier services.TokenVerifier) *Deps {
	userRepo := repos.NewUserRepo(db)
	sessRepo := repos.NewSessionRepo(db)
	guestRepo := repos.NewGuestRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	otpRepo := repos.NewOTPRepo(db)

	authSvc := &services.AuthService{Users: userRepo, Sessions: sessRepo, Guests: guestRepo, Verifier: verifier}
	cartSvc := &services.CartService{Sessions: sessRepo, Guests: guestRepo, Products: prodRepo}
	orderSvc := &services.OrderService{
		Sessions:   sessRepo,
		Users:      userRepo,
		Products:   prodRepo,
		Orders:     orderRepo,
		Mail:       mailer,
		AdminEmail: cfg.AdminEmail,
	}
	catalogSvc := &services.CatalogService{Products: prodRepo, Blobs: blobs}
	otpSvc := &services.OTPService{Users: userRepo, OTPs: otpRepo, Mail: mailer}

	return &Deps{
		Auth:   authSvc,
		AuthH:  &AuthHandler{Auth: authSvc, OTP: otpSvc},
		GuestH: &GuestHandler{Cart: cartSvc},
		CartH:  &CartHandler{Cart: cartSvc},
		ProdH:  &ProductHandler{Catalog: catalogSvc},
		OrderH: &OrderHandler{Orders: orderSvc},
	}
}
