package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoecrew/internal/domain"
	applog "shoecrew/internal/log"
)

type OrderService struct {
	Sessions SessionStore
	Users    UserStore
	Products ProductStore
	Orders   OrderStore
	Mail     Mailer
	// Operator address copied on every confirmation.
	AdminEmail string
}

type PlaceInput struct {
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
}

// Place snapshots the session cart into an order. Every item's price is
// the catalog unit price read here, and the total is the sum of those
// snapshots; the client never supplies prices. The confirmation mail is
// fire-and-forget, and the cart is cleared only after the order is in.
func (s *OrderService) Place(ctx context.Context, sid string, in PlaceInput) (*domain.Order, error) {
	sess, err := s.Sessions.ByID(ctx, sid)
	if err != nil {
		if notFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if len(sess.Cart) == 0 {
		return nil, ErrCartEmpty
	}

	ids := make([]primitive.ObjectID, 0, len(sess.Cart))
	for _, e := range sess.Cart {
		ids = append(ids, e.Product)
	}
	prods, err := s.Products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(sess.Cart))
	lines := make([]OrderLine, 0, len(sess.Cart))
	total := 0.0
	for _, e := range sess.Cart {
		// A product removed from the catalog after it entered the cart
		// must not be sold; no price exists to snapshot.
		p, ok := prods[e.Product]
		if !ok {
			return nil, ErrNotFound
		}
		items = append(items, domain.OrderItem{
			Product:         e.Product,
			Quantity:        e.Quantity,
			PriceAtPurchase: p.Price,
		})
		lines = append(lines, OrderLine{Title: p.Title, Quantity: e.Quantity, Price: p.Price})
		total += p.Price * float64(e.Quantity)
	}

	u, err := s.Users.ByID(ctx, sess.SessionID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	method := in.PaymentMethod
	if method == "" {
		method = domain.PayCOD
	}
	status := in.PaymentStatus
	if status == "" {
		status = domain.PaymentPending
	}

	order := &domain.Order{
		User:          u.ID,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: method,
		PaymentStatus: status,
		ShippingAddress: domain.ShippingAddress{
			FullName:      u.Fullname,
			Number:        u.Number,
			Email:         u.Email,
			StreetAddress: u.StreetAddress,
			City:          u.City,
			State:         u.State,
		},
		OrderStatus: domain.OrderPlaced,
	}
	if _, err := s.Orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if s.Mail != nil {
		if err := s.Mail.SendOrderMail(order, lines, u.Email, s.AdminEmail); err != nil {
			applog.System("order.mail", err, map[string]any{"order": order.ID.Hex()})
		}
	}

	if err := s.Sessions.SaveCart(ctx, sid, nil); err != nil {
		return nil, err
	}
	return order, nil
}

// OrderItemView joins a snapshot line with its catalog product for
// listing responses. A product deleted since purchase comes back zero.
type OrderItemView struct {
	Product         domain.Product `json:"product"`
	Quantity        int            `json:"quantity"`
	PriceAtPurchase float64        `json:"priceAtPurchase"`
}

type OrderView struct {
	domain.Order
	Items []OrderItemView `json:"items"`
	// Customer is filled on the admin queue only.
	Customer *domain.User `json:"customer,omitempty"`
}

func (s *OrderService) MyOrders(ctx context.Context, sid string) ([]OrderView, error) {
	sess, err := s.Sessions.ByID(ctx, sid)
	if err != nil {
		if notFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	uid, err := primitive.ObjectIDFromHex(sess.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	orders, err := s.Orders.ByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.resolveOrders(ctx, orders)
}

func (s *OrderService) PendingAll(ctx context.Context) ([]OrderView, error) {
	orders, err := s.Orders.PendingPayment(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.resolveOrders(ctx, orders)
	if err != nil {
		return nil, err
	}
	for i := range views {
		u, err := s.Users.ByID(ctx, views[i].Order.User.Hex())
		if err != nil {
			continue
		}
		views[i].Customer = u
	}
	return views, nil
}

func (s *OrderService) resolveOrders(ctx context.Context, orders []domain.Order) ([]OrderView, error) {
	ids := make([]primitive.ObjectID, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			ids = append(ids, it.Product)
		}
	}
	prods, err := s.Products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemView{
				Product:         prods[it.Product],
				Quantity:        it.Quantity,
				PriceAtPurchase: it.PriceAtPurchase,
			})
		}
		out = append(out, OrderView{Order: o, Items: items})
	}
	return out, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.Orders.MarkDelivered(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
