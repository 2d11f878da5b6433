package services

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"shoecrew/internal/domain"
)

type AuthService struct {
	Users    UserStore
	Sessions SessionStore
	Guests   GuestStore
	Verifier TokenVerifier
}

type SignupInput struct {
	Fullname      string
	Email         string
	Password      string
	StreetAddress string
	State         string
	City          string
	Number        string
	Role          domain.Role
	AdminID       string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	if in.AdminID != "" {
		ok, err := s.Users.AdminExists(ctx, in.AdminID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrBadAdminRef
		}
	}

	if _, err := s.Users.ByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !notFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	u := &domain.User{
		Fullname:      in.Fullname,
		Email:         in.Email,
		Password:      string(hash),
		StreetAddress: in.StreetAddress,
		State:         in.State,
		City:          in.City,
		Number:        in.Number,
		Roles:         domain.RoleSet{role},
	}
	if in.AdminID != "" {
		if oid, err := primitive.ObjectIDFromHex(in.AdminID); err == nil {
			u.AdminID = oid
		}
	}
	if _, err := s.Users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginResult struct {
	SessionID string
	Cart      []domain.CartEntry
	User      *domain.User
}

func (s *AuthService) Login(ctx context.Context, email, password, gid string) (*LoginResult, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return s.openSession(ctx, u, gid)
}

// GoogleLogin verifies the identity assertion, creating the user on
// first sight with a random throwaway password.
func (s *AuthService) GoogleLogin(ctx context.Context, token, gid string) (*LoginResult, error) {
	email, name, err := s.Verifier.Verify(ctx, token)
	if err != nil {
		return nil, ErrBadCreds
	}
	u, err := s.Users.ByEmail(ctx, email)
	if notFound(err) {
		u = &domain.User{
			Fullname: name,
			Email:    email,
			Password: uuid.NewString(),
			Roles:    domain.RoleSet{domain.RoleUser},
		}
		if _, err := s.Users.Insert(ctx, u); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s.openSession(ctx, u, gid)
}

// openSession migrates the guest cart (at most once: the guest record
// is deleted in the same step) and inserts a brand-new session for the
// user. Any session a prior login created is left to expire; the old
// sid cookie no longer resolves.
func (s *AuthService) openSession(ctx context.Context, u *domain.User, gid string) (*LoginResult, error) {
	cart := []domain.CartEntry{}
	if gid != "" {
		g, err := s.Guests.BySessionID(ctx, gid)
		switch {
		case err == nil:
			for _, e := range g.Cart {
				if e.Quantity < 1 {
					e.Quantity = 1
				}
				cart = append(cart, e)
			}
			if err := s.Guests.Delete(ctx, gid); err != nil {
				return nil, err
			}
		case !notFound(err):
			return nil, err
		}
	}

	sess := &domain.Session{SessionID: u.ID.Hex(), Cart: cart}
	sid, err := s.Sessions.Insert(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SessionID: sid.Hex(), Cart: cart, User: u}, nil
}

// Logout drops the session record. A sid that no longer resolves, or
// never could, is already logged out.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.Sessions.Delete(ctx, sid); err != nil && !notFound(err) {
		return err
	}
	return nil
}

// Profile resolves sid -> session record -> embedded user id -> user.
func (s *AuthService) Profile(ctx context.Context, sid string) (*domain.User, error) {
	sess, err := s.Sessions.ByID(ctx, sid)
	if err != nil {
		if notFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	u, err := s.Users.ByID(ctx, sess.SessionID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// CurrentAdmin is the access-control gate for admin-only operations.
// The failures stay distinct: no cookie, dead session, and missing
// admin role each surface differently.
func (s *AuthService) CurrentAdmin(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, ErrNotLoggedIn
	}
	sess, err := s.Sessions.ByID(ctx, sid)
	if err != nil {
		if notFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	u, err := s.Users.ByID(ctx, sess.SessionID)
	if err != nil {
		return nil, ErrAccessDenied
	}
	if !u.Roles.Has(domain.RoleAdmin) {
		return nil, ErrAccessDenied
	}
	return u, nil
}
