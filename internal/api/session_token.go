package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTokenTTL     = 7 * 24 * time.Hour
	sessionTokenSubject = "nibble-owner"
	sessionTokenIssuer  = "nibble"
)

var (
	errInvalidSessionToken = errors.New("invalid session token")
	errStaleSessionToken   = errors.New("stale session token")
)

// sessionClaims ties a token to the session generation it was issued for.
type sessionClaims struct {
	Generation int `json:"gen"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildSessionToken(now time.Time, generation int) (string, error) {
	claims := sessionClaims{
		Generation: generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			Subject:   sessionTokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseSessionToken(raw string) (*sessionClaims, error) {
	if raw == "" {
		return nil, errInvalidSessionToken
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return handler.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithSubject(sessionTokenSubject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidSessionToken, err)
	}
	if !token.Valid {
		return nil, errInvalidSessionToken
	}
	return claims, nil
}

// setSessionCookie issues a cookie for the current session generation.
func (handler *Handler) setSessionCookie(c *fiber.Ctx) error {
	generation, err := handler.services.Auth.SessionGeneration()
	if err != nil {
		return err
	}

	now := time.Now()
	token, err := handler.buildSessionToken(now, generation)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  now.Add(sessionTokenTTL),
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) isAuthenticated(c *fiber.Ctx) bool {
	return handler.checkSession(c.Cookies(sessionCookieName)) == nil
}

func (handler *Handler) checkSession(raw string) error {
	claims, err := handler.parseSessionToken(raw)
	if err != nil {
		return err
	}
	generation, err := handler.services.Auth.SessionGeneration()
	if err != nil {
		handler.logger.Error("load session generation failed", "error", err)
		return err
	}
	if claims.Generation != generation {
		return errStaleSessionToken
	}
	return nil
}
