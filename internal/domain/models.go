package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerid" json:"ownerid"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Sizes       []string           `bson:"size" json:"size"`
	Description string             `bson:"description" json:"description"`
	Images      []string           `bson:"images" json:"images"`
	Category    string             `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
}

// ProductPatch carries the optional fields of a product update; nil
// means leave the stored value alone.
type ProductPatch struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Sizes       []string `json:"size"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
}

// CartEntry is one line embedded in a session document. Each entry
// carries its own id so it can be removed individually.
type CartEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Session is the cart of a logged-in user. SessionID holds the owning
// user's document id; the record's own id is what the sid cookie carries.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Cart      []CartEntry        `bson:"cart" json:"cart"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// GuestSession is the anonymous cart, keyed by the random id the gid
// cookie carries. The store expires it by TTL on CreatedAt.
type GuestSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Cart      []CartEntry        `bson:"cart" json:"cart"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type PaymentMethod string

const (
	PayCOD    PaymentMethod = "COD"
	PayCard   PaymentMethod = "CARD"
	PayUPI    PaymentMethod = "UPI"
	PayPaypal PaymentMethod = "PAYPAL"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItem snapshots one purchased line; PriceAtPurchase is immutable
// after the order is created.
type OrderItem struct {
	Product         primitive.ObjectID `bson:"product" json:"product"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	PriceAtPurchase float64            `bson:"priceAtPurchase" json:"priceAtPurchase"`
}

type ShippingAddress struct {
	FullName      string `bson:"fullName" json:"fullName"`
	Number        string `bson:"number" json:"number"`
	Email         string `bson:"email" json:"email"`
	StreetAddress string `bson:"streetAddress" json:"streetAddress"`
	City          string `bson:"city" json:"city"`
	State         string `bson:"state" json:"state"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	OrderStatus     OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// OTP is the single active verification code for an email (upserted).
type OTP struct {
	Email     string    `bson:"email" json:"email"`
	Code      string    `bson:"otp" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
