package mail

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"shoecrew/internal/domain"
	"shoecrew/internal/services"
)

// Service sends transactional mail over SMTP. Construct once at
// startup and inject; callers decide whether a failure matters.
type Service struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, pass, from string) *Service {
	return &Service{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

func (s *Service) SendOrderMail(order *domain.Order, lines []services.OrderLine, to ...string) error {
	var items strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&items, `<li style="margin-bottom:5px;"><b>%s</b> x %d - ₹%.2f</li>`,
			l.Title, l.Quantity, l.Price)
	}

	body := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;padding:20px;border:1px solid #ddd;border-radius:10px;background:#f9f9f9;">
  <h2 style="color:#2c3e50;">Order Confirmation</h2>
  <p>Hi <b>%s</b>,</p>
  <p>Thank you for shopping with <b>ShoeCrew</b>! Your order has been placed.</p>
  <h3>Order Summary</h3>
  <ul style="padding-left:18px;color:#2c3e50;">%s</ul>
  <p><strong>Total:</strong> ₹%.2f</p>
  <p><strong>Payment:</strong> %s (%s)</p>
  <p><strong>Shipping:</strong> %s, %s, %s</p>
  <hr/>
  <p style="color:#27ae60;font-weight:bold;">We will notify you once it ships.</p>
  <small style="color:gray;">© %d ShoeCrew Team</small>
</div>`,
		order.ShippingAddress.FullName, items.String(), order.TotalAmount,
		order.PaymentMethod, order.PaymentStatus,
		order.ShippingAddress.StreetAddress, order.ShippingAddress.City, order.ShippingAddress.State,
		time.Now().Year())

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("ShoeCrew - Order #%s Confirmed", order.ID.Hex()))
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *Service) SendOTPMail(to, code string) error {
	body := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;padding:20px;border:1px solid #ddd;border-radius:10px;background:#fdfdfd;">
  <h2 style="color:#2c3e50;">One-Time Password</h2>
  <p>Your OTP for <b>ShoeCrew</b> is:</p>
  <h1 style="color:#27ae60;text-align:center;letter-spacing:3px;">%s</h1>
  <p style="color:#2c3e50;">This code expires shortly. Do not share it with anyone.</p>
  <hr/>
  <small style="color:gray;">© %d ShoeCrew Team</small>
</div>`, code, time.Now().Year())

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "ShoeCrew Login - Your OTP Code")
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
