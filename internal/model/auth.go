package model

import "github.com/golang-jwt/jwt/v5"

// AccountClaims are JWT claims binding a socket to a ledger identity.
type AccountClaims struct {
	Account string `json:"account"`
	jwt.RegisteredClaims
}

// GuestLoginRequest is the request body for guest login
type GuestLoginRequest struct {
	Name string `json:"name"`
}

// GuestLoginResponse is returned after successful login
type GuestLoginResponse struct {
	Token   string `json:"token"`
	Account string `json:"account"`
}
