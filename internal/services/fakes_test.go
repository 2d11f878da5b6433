package services_test

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shoecrew/internal/domain"
	"shoecrew/internal/services"
)

// In-memory store fakes standing in for the document database.

type fakeUsers struct{ users []*domain.User }

func (f *fakeUsers) Insert(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	f.users = append(f.users, &cp)
	return u.ID, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUsers) AdminExists(_ context.Context, id string) (bool, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id && u.Roles.Has(domain.RoleAdmin) {
			return true, nil
		}
	}
	return false, nil
}

type fakeSessions struct{ recs map[string]*domain.Session }

func newFakeSessions() *fakeSessions {
	return &fakeSessions{recs: map[string]*domain.Session{}}
}

func (f *fakeSessions) Insert(_ context.Context, s *domain.Session) (primitive.ObjectID, error) {
	s.ID = primitive.NewObjectID()
	cp := *s
	f.recs[s.ID.Hex()] = &cp
	return s.ID, nil
}

func (f *fakeSessions) ByID(_ context.Context, sid string) (*domain.Session, error) {
	s, ok := f.recs[sid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	cp.Cart = append([]domain.CartEntry(nil), s.Cart...)
	return &cp, nil
}

func (f *fakeSessions) SaveCart(_ context.Context, sid string, cart []domain.CartEntry) error {
	s, ok := f.recs[sid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.Cart = append([]domain.CartEntry(nil), cart...)
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, sid string) error {
	if _, ok := f.recs[sid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.recs, sid)
	return nil
}

type fakeGuests struct{ recs map[string]*domain.GuestSession }

func newFakeGuests() *fakeGuests {
	return &fakeGuests{recs: map[string]*domain.GuestSession{}}
}

func (f *fakeGuests) Insert(_ context.Context, g *domain.GuestSession) error {
	g.ID = primitive.NewObjectID()
	cp := *g
	f.recs[g.SessionID] = &cp
	return nil
}

func (f *fakeGuests) BySessionID(_ context.Context, gid string) (*domain.GuestSession, error) {
	g, ok := f.recs[gid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *g
	cp.Cart = append([]domain.CartEntry(nil), g.Cart...)
	return &cp, nil
}

func (f *fakeGuests) SaveCart(_ context.Context, gid string, cart []domain.CartEntry) error {
	g, ok := f.recs[gid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	g.Cart = append([]domain.CartEntry(nil), cart...)
	return nil
}

func (f *fakeGuests) Delete(_ context.Context, gid string) error {
	delete(f.recs, gid)
	return nil
}

type fakeProducts struct{ prods map[primitive.ObjectID]domain.Product }

func newFakeProducts() *fakeProducts {
	return &fakeProducts{prods: map[primitive.ObjectID]domain.Product{}}
}

func (f *fakeProducts) Insert(_ context.Context, p *domain.Product) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.prods[p.ID] = *p
	return p.ID, nil
}

func (f *fakeProducts) ByID(_ context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	p, ok := f.prods[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakeProducts) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error) {
	out := map[primitive.ObjectID]domain.Product{}
	for _, id := range ids {
		if p, ok := f.prods[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProducts) All(_ context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.prods {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	p, ok := f.prods[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	f.prods[oid] = p
	return &p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	if _, ok := f.prods[oid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.prods, oid)
	return nil
}

type fakeOrders struct{ orders []*domain.Order }

func (f *fakeOrders) Insert(_ context.Context, o *domain.Order) (primitive.ObjectID, error) {
	o.ID = primitive.NewObjectID()
	cp := *o
	f.orders = append(f.orders, &cp)
	return o.ID, nil
}

func (f *fakeOrders) ByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) PendingPayment(_ context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.PaymentStatus == domain.PaymentPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) MarkDelivered(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID.Hex() == id {
			o.PaymentStatus = domain.PaymentPaid
			o.OrderStatus = domain.OrderDelivered
			cp := *o
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeOTPs struct{ recs map[string]domain.OTP }

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{recs: map[string]domain.OTP{}} }

func (f *fakeOTPs) Upsert(_ context.Context, email, code string) error {
	f.recs[email] = domain.OTP{Email: email, Code: code}
	return nil
}

func (f *fakeOTPs) ByEmail(_ context.Context, email string) (*domain.OTP, error) {
	o, ok := f.recs[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &o, nil
}

func (f *fakeOTPs) Delete(_ context.Context, email string) error {
	delete(f.recs, email)
	return nil
}

type fakeMailer struct {
	orderMails int
	otpMails   []string // codes in send order
	err        error
}

func (m *fakeMailer) SendOrderMail(*domain.Order, []services.OrderLine, ...string) error {
	m.orderMails++
	return m.err
}

func (m *fakeMailer) SendOTPMail(_, code string) error {
	m.otpMails = append(m.otpMails, code)
	return m.err
}

type fakeVerifier struct {
	email, name string
	err         error
}

func (v *fakeVerifier) Verify(context.Context, string) (string, string, error) {
	return v.email, v.name, v.err
}

type fakeBlobs struct {
	put     []string
	deleted []string
	fail    bool
}

func (b *fakeBlobs) Put(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	if b.fail {
		return "", io.ErrUnexpectedEOF
	}
	b.put = append(b.put, key)
	return "https://bucket.s3.test.amazonaws.com/" + key, nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobs) KeyFromURL(url string) string {
	i := len(url) - 1
	for i >= 0 && url[i] != '/' {
		i--
	}
	return url[i+1:]
}
