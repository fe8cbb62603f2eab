package emsapi

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"_id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) ForgetPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forget-password", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var out messageResponse
	body := struct {
		Password string `json:"password"`
	}{Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password/"+token, nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
