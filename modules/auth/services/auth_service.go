package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/modules/auth/domain/auth"
	"github.com/emstack/ems-console/pkg/session"
)

// AuthClient is the slice of the remote API the auth flow needs.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*emsapi.LoginResponse, error)
	ForgetPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
}

type AuthService struct {
	client AuthClient
	log    *logrus.Logger
}

func NewAuthService(client AuthClient, log *logrus.Logger) *AuthService {
	return &AuthService{client: client, log: log}
}

// Login exchanges credentials for a grant. The role decides the landing
// page; unknown roles land on the employee dashboard.
func (s *AuthService) Login(ctx context.Context, creds *auth.Credentials) (*auth.Grant, error) {
	res, err := s.client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		s.log.WithError(err).WithField("email", creds.Email).Warn("login rejected")
		return nil, err
	}
	role := session.Role(res.User.Role)
	return &auth.Grant{
		Token:    res.Token,
		UserID:   res.User.ID,
		Role:     role,
		Redirect: auth.RedirectFor(role),
	}, nil
}

func (s *AuthService) ForgetPassword(ctx context.Context, email string) (string, error) {
	return s.client.ForgetPassword(ctx, email)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return s.client.ResetPassword(ctx, token, password)
}
