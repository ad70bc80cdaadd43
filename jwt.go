package main

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rohitdare/carbon/models"
)

const (
	tokenIssuer = "bluecarbon"
	tokenTTL    = 24 * time.Hour
)

// signJWT issues the HS256 access token for one account. The email claim
// is informational; authorization goes by the subject id.
func signJWT(secret string, u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID.Hex(),
		"email": u.Email,
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
		"iss":   tokenIssuer,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseJWT validates an access token and returns the account id. Issuer,
// signing method, and expiration are all enforced by the parser.
func parseJWT(secret, tokenStr string) (primitive.ObjectID, error) {
	tok, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return primitive.NilObjectID, errors.New("invalid or expired token")
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return primitive.NilObjectID, errors.New("token has no subject")
	}
	return primitive.ObjectIDFromHex(sub)
}
