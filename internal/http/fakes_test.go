package handlers_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"shoecrew/internal/domain"
	"shoecrew/internal/services"
)

// Minimal in-memory stores for wiring real handlers in tests.

type memUsers struct{ users []*domain.User }

func (m *memUsers) Insert(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	m.users = append(m.users, &cp)
	return u.ID, nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memUsers) AdminExists(_ context.Context, id string) (bool, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id && u.Roles.Has(domain.RoleAdmin) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) add(email, password string, roles ...domain.Role) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	u := &domain.User{
		ID:       primitive.NewObjectID(),
		Fullname: "Test User",
		Email:    email,
		Password: string(hash),
		Roles:    domain.RoleSet(roles),
	}
	m.users = append(m.users, u)
	return u
}

type memSessions struct{ recs map[string]*domain.Session }

func newMemSessions() *memSessions { return &memSessions{recs: map[string]*domain.Session{}} }

func (m *memSessions) Insert(_ context.Context, s *domain.Session) (primitive.ObjectID, error) {
	s.ID = primitive.NewObjectID()
	cp := *s
	m.recs[s.ID.Hex()] = &cp
	return s.ID, nil
}

func (m *memSessions) ByID(_ context.Context, sid string) (*domain.Session, error) {
	s, ok := m.recs[sid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	cp.Cart = append([]domain.CartEntry(nil), s.Cart...)
	return &cp, nil
}

func (m *memSessions) SaveCart(_ context.Context, sid string, cart []domain.CartEntry) error {
	s, ok := m.recs[sid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.Cart = append([]domain.CartEntry(nil), cart...)
	return nil
}

func (m *memSessions) Delete(_ context.Context, sid string) error {
	if _, ok := m.recs[sid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.recs, sid)
	return nil
}

type memGuests struct{ recs map[string]*domain.GuestSession }

func newMemGuests() *memGuests { return &memGuests{recs: map[string]*domain.GuestSession{}} }

func (m *memGuests) Insert(_ context.Context, g *domain.GuestSession) error {
	g.ID = primitive.NewObjectID()
	cp := *g
	m.recs[g.SessionID] = &cp
	return nil
}

func (m *memGuests) BySessionID(_ context.Context, gid string) (*domain.GuestSession, error) {
	g, ok := m.recs[gid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *g
	cp.Cart = append([]domain.CartEntry(nil), g.Cart...)
	return &cp, nil
}

func (m *memGuests) SaveCart(_ context.Context, gid string, cart []domain.CartEntry) error {
	g, ok := m.recs[gid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	g.Cart = append([]domain.CartEntry(nil), cart...)
	return nil
}

func (m *memGuests) Delete(_ context.Context, gid string) error {
	delete(m.recs, gid)
	return nil
}

type memProducts struct{ prods map[primitive.ObjectID]domain.Product }

func newMemProducts() *memProducts {
	return &memProducts{prods: map[primitive.ObjectID]domain.Product{}}
}

func (m *memProducts) Insert(_ context.Context, p *domain.Product) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.prods[p.ID] = *p
	return p.ID, nil
}

func (m *memProducts) ByID(_ context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	p, ok := m.prods[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (m *memProducts) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error) {
	out := map[primitive.ObjectID]domain.Product{}
	for _, id := range ids {
		if p, ok := m.prods[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memProducts) All(_ context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range m.prods {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	p, ok := m.prods[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	m.prods[oid] = p
	return &p, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, ok := m.prods[oid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.prods, oid)
	return nil
}

type memOrders struct{ orders []*domain.Order }

func (m *memOrders) Insert(_ context.Context, o *domain.Order) (primitive.ObjectID, error) {
	o.ID = primitive.NewObjectID()
	cp := *o
	m.orders = append(m.orders, &cp)
	return o.ID, nil
}

func (m *memOrders) ByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) PendingPayment(_ context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.PaymentStatus == domain.PaymentPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) MarkDelivered(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID.Hex() == id {
			o.PaymentStatus = domain.PaymentPaid
			o.OrderStatus = domain.OrderDelivered
			cp := *o
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type memOTPs struct{ codes map[string]string }

func newMemOTPs() *memOTPs { return &memOTPs{codes: map[string]string{}} }

func (m *memOTPs) Upsert(_ context.Context, email, code string) error {
	m.codes[email] = code
	return nil
}

func (m *memOTPs) ByEmail(_ context.Context, email string) (*domain.OTP, error) {
	code, ok := m.codes[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &domain.OTP{Email: email, Code: code}, nil
}

func (m *memOTPs) Delete(_ context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type noopMailer struct{}

func (noopMailer) SendOrderMail(*domain.Order, []services.OrderLine, ...string) error { return nil }
func (noopMailer) SendOTPMail(string, string) error                                   { return nil }

// capMailer records the last code it was asked to send.
type capMailer struct{ lastCode string }

func (m *capMailer) SendOrderMail(*domain.Order, []services.OrderLine, ...string) error { return nil }

func (m *capMailer) SendOTPMail(_, code string) error {
	m.lastCode = code
	return nil
}
