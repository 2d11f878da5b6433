package services

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoecrew/internal/domain"
)

// CartService mutates whichever cart the request's cookies resolve to.
// An authenticated session takes priority over a guest one.
type CartService struct {
	Sessions SessionStore
	Guests   GuestStore
	Products ProductStore
}

// ResolvedItem is a cart entry joined against the catalog for responses.
type ResolvedItem struct {
	EntryID  string         `json:"id"`
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (s *CartService) Add(ctx context.Context, sid, gid, productID string, qty int) ([]ResolvedItem, error) {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Products.ByID(ctx, productID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cart, save, err := s.loadCart(ctx, sid, gid)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart {
		if cart[i].Product == p.ID {
			cart[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, domain.CartEntry{ID: primitive.NewObjectID(), Product: p.ID, Quantity: qty})
	}

	if err := save(cart); err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

func (s *CartService) Get(ctx context.Context, sid, gid string) ([]ResolvedItem, error) {
	cart, _, err := s.loadCart(ctx, sid, gid)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, cart)
}

// Remove drops the entry whose id matches; unknown ids fall through as
// a no-op save, matching add/get failure modes otherwise.
func (s *CartService) Remove(ctx context.Context, sid, gid, entryID string) ([]ResolvedItem, error) {
	cart, save, err := s.loadCart(ctx, sid, gid)
	if err != nil {
		return nil, err
	}
	kept := cart[:0]
	for _, e := range cart {
		if e.ID.Hex() != entryID {
			kept = append(kept, e)
		}
	}
	if err := save(kept); err != nil {
		return nil, err
	}
	return s.resolve(ctx, kept)
}

// EnsureGuest returns the guest session for gid, minting one when the
// cookie is absent or the record already expired.
func (s *CartService) EnsureGuest(ctx context.Context, gid string) (string, []ResolvedItem, error) {
	if gid != "" {
		g, err := s.Guests.BySessionID(ctx, gid)
		if err == nil {
			items, rerr := s.resolve(ctx, g.Cart)
			return gid, items, rerr
		}
		if !notFound(err) {
			return "", nil, err
		}
		// Cookie survived the record's TTL; recreate under the same id.
		g = &domain.GuestSession{SessionID: gid}
		if err := s.Guests.Insert(ctx, g); err != nil {
			return "", nil, err
		}
		return gid, []ResolvedItem{}, nil
	}

	gid = uuid.NewString()
	if err := s.Guests.Insert(ctx, &domain.GuestSession{SessionID: gid}); err != nil {
		return "", nil, err
	}
	return gid, []ResolvedItem{}, nil
}

// loadCart resolves the active session and returns its cart plus a
// closure that persists a replacement cart to the same record.
func (s *CartService) loadCart(ctx context.Context, sid, gid string) ([]domain.CartEntry, func([]domain.CartEntry) error, error) {
	switch {
	case sid != "":
		sess, err := s.Sessions.ByID(ctx, sid)
		if err != nil {
			if notFound(err) {
				return nil, nil, ErrSessionNotFound
			}
			return nil, nil, err
		}
		return sess.Cart, func(c []domain.CartEntry) error {
			return s.Sessions.SaveCart(ctx, sid, c)
		}, nil
	case gid != "":
		g, err := s.Guests.BySessionID(ctx, gid)
		if err != nil {
			if notFound(err) {
				return nil, nil, ErrSessionNotFound
			}
			return nil, nil, err
		}
		return g.Cart, func(c []domain.CartEntry) error {
			return s.Guests.SaveCart(ctx, gid, c)
		}, nil
	default:
		return nil, nil, ErrNoSession
	}
}

func (s *CartService) resolve(ctx context.Context, cart []domain.CartEntry) ([]ResolvedItem, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, e := range cart {
		ids = append(ids, e.Product)
	}
	prods, err := s.Products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ResolvedItem, 0, len(cart))
	for _, e := range cart {
		// Entries whose product left the catalog stay in the stored cart
		// but are hidden from the view; checkout refuses them outright.
		p, ok := prods[e.Product]
		if !ok {
			continue
		}
		out = append(out, ResolvedItem{EntryID: e.ID.Hex(), Product: p, Quantity: e.Quantity})
	}
	return out, nil
}
