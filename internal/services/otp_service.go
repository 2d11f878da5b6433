package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

type OTPService struct {
	Users UserStore
	OTPs  OTPStore
	Mail  Mailer
}

// Send issues a fresh 6-digit code for an unregistered email. The
// upsert replaces any prior code, so only the newest one verifies.
func (s *OTPService) Send(ctx context.Context, email string) error {
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !notFound(err) {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.OTPs.Upsert(ctx, email, code); err != nil {
		return err
	}
	return s.Mail.SendOTPMail(email, code)
}

// Verify consumes the code: a match deletes the record so replays fail.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	rec, err := s.OTPs.ByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			return ErrOTPNotFound
		}
		return err
	}
	if rec.Code != code {
		return ErrOTPMismatch
	}
	return s.OTPs.Delete(ctx, email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
