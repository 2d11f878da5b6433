package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shoecrew/internal/http/handlers"
	"shoecrew/internal/services"
)

// env holds the in-memory stores behind a test app so individual tests
// can seed and inspect state directly.
type env struct {
	users    *memUsers
	sessions *memSessions
	guests   *memGuests
	products *memProducts
	orders   *memOrders
}

// newApp wires the real handlers over in-memory stores with the same
// route table the server uses.
func newApp(t *testing.T) (*fiber.App, *env) {
	t.Helper()
	e := &env{
		users:    &memUsers{},
		sessions: newMemSessions(),
		guests:   newMemGuests(),
		products: newMemProducts(),
		orders:   &memOrders{},
	}

	authSvc := &services.AuthService{Users: e.users, Sessions: e.sessions, Guests: e.guests}
	cartSvc := &services.CartService{Sessions: e.sessions, Guests: e.guests, Products: e.products}
	orderSvc := &services.OrderService{
		Sessions:   e.sessions,
		Users:      e.users,
		Products:   e.products,
		Orders:     e.orders,
		Mail:       noopMailer{},
		AdminEmail: "admin@shoecrew.test",
	}

	authH := &handlers.AuthHandler{Auth: authSvc}
	guestH := &handlers.GuestHandler{Cart: cartSvc}
	cartH := &handlers.CartHandler{Cart: cartSvc}
	orderH := &handlers.OrderHandler{Orders: orderSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
		},
	})
	app.Use(requestid.New())

	user := app.Group("/user")
	user.Post("/signup", authH.Signup)
	user.Post("/login", authH.Login)
	user.Post("/logout", authH.Logout)
	user.Get("/profile", authH.Profile)

	guest := app.Group("/guest")
	guest.Get("/", guestH.Ensure)
	guest.Get("/get", guestH.Which)

	cart := app.Group("/cart")
	cart.Post("/add", cartH.Add)
	cart.Get("/", cartH.Get)
	cart.Delete("/remove/:productId", cartH.Remove)

	order := app.Group("/order")
	order.Post("/place", orderH.Place)
	order.Get("/my-order", orderH.Mine)
	order.Get("/all", handlers.RequireAdmin(authSvc), orderH.All)
	order.Put("/deliver/:id", handlers.RequireAdmin(authSvc), orderH.Deliver)

	return app, e
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return out
}

// login posts valid credentials and returns the sid cookie value.
func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/user/login", `{"email":"`+email+`","password":"`+password+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login expected 200, got %d", resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("login did not set sid cookie")
	}
	return sid
}
