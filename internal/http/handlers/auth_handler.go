package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoecrew/internal/domain"
	applog "shoecrew/internal/log"
	"shoecrew/internal/services"
	"shoecrew/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
	OTP  *services.OTPService
}

type signupReq struct {
	Fullname      string `json:"fullname"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	StreetAddress string `json:"streetAddress"`
	State         string `json:"state"`
	City          string `json:"city"`
	Number        string `json:"number"`
	Role          string `json:"role"`
	AdminID       string `json:"adminId"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}

	name, okName := validate.Name(req.Fullname)
	email, okEmail := validate.Email(req.Email)
	street, okStreet := validate.Text(req.StreetAddress, 3, 255)
	state, okState := validate.Text(req.State, 2, 100)
	city, okCity := validate.Text(req.City, 2, 100)
	number, okNumber := validate.Phone(req.Number)
	if !okName || !okEmail || !okStreet || !okState || !okCity || !okNumber || !validate.Password(req.Password) {
		applog.Security(c, "signup.validation.fail", map[string]any{"email": req.Email})
		return badRequest(c, "please enter valid data")
	}
	role := domain.Role(req.Role)
	if role != "" && role != domain.RoleAdmin && role != domain.RoleUser {
		return badRequest(c, "invalid role")
	}
	if req.AdminID != "" {
		if _, ok := validate.ObjectID(req.AdminID); !ok {
			return badRequest(c, "invalid adminId")
		}
	}

	u, err := h.Auth.Signup(c.Context(), services.SignupInput{
		Fullname:      name,
		Email:         email,
		Password:      req.Password,
		StreetAddress: street,
		State:         state,
		City:          city,
		Number:        number,
		Role:          role,
		AdminID:       req.AdminID,
	})
	if err != nil {
		return fail(c, "signup", err)
	}
	applog.Audit(c, "signup.success", map[string]any{"user": u.ID.Hex()})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully", "user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || !validate.Password(req.Password) {
		applog.Security(c, "login.validation.fail", map[string]any{"email": req.Email})
		return badRequest(c, "please enter valid data")
	}

	res, err := h.Auth.Login(c.Context(), email, req.Password, c.Cookies("gid"))
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"email": email})
		return fail(c, "login", err)
	}

	setSessionCookie(c, "sid", res.SessionID)
	clearCookie(c, "gid")
	applog.Audit(c, "login.success", map[string]any{"user": res.User.ID.Hex()})
	return c.JSON(fiber.Map{"message": "Login successful", "cart": res.Cart})
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "missing token")
	}

	res, err := h.Auth.GoogleLogin(c.Context(), req.Token, c.Cookies("gid"))
	if err != nil {
		applog.Security(c, "login.google.fail", nil)
		return fail(c, "login.google", err)
	}

	setSessionCookie(c, "sid", res.SessionID)
	clearCookie(c, "gid")
	applog.Audit(c, "login.google.success", map[string]any{"user": res.User.ID.Hex()})
	return c.JSON(fiber.Map{"message": "Login successful", "cart": res.Cart})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return c.JSON(fiber.Map{"message": "No session found"})
	}
	if err := h.Auth.Logout(c.Context(), sid); err != nil {
		return fail(c, "logout", err)
	}
	clearCookie(c, "sid")
	applog.Audit(c, "logout", nil)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return fail(c, "profile", services.ErrNotLoggedIn)
	}
	u, err := h.Auth.Profile(c.Context(), sid)
	if err != nil {
		return fail(c, "profile", err)
	}
	return c.JSON(u)
}

func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}
	if err := h.OTP.Send(c.Context(), email); err != nil {
		return fail(c, "otp.send", err)
	}
	applog.Info(c, "otp.sent", map[string]any{"email": email})
	return c.JSON(fiber.Map{"message": "OTP sent successfully"})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "malformed body")
	}
	email, okEmail := validate.Email(req.Email)
	code, okCode := validate.OTP(req.OTP)
	if !okEmail || !okCode {
		return badRequest(c, "email and otp are required")
	}
	if err := h.OTP.Verify(c.Context(), email, code); err != nil {
		applog.Security(c, "otp.verify.fail", map[string]any{"email": email})
		return fail(c, "otp.verify", err)
	}
	applog.Audit(c, "otp.verified", map[string]any{"email": email})
	return c.JSON(fiber.Map{"message": "OTP verified successfully"})
}
