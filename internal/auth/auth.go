package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/engagehq/engage-api/internal/config"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/samber/lo"
)

// Claims is the identity extracted from a validated bearer token.
type Claims struct {
	ExternalID string
	FirstName  string
	LastName   string
	Email      string
	Roles      []string
	TenantID   int64
}

// Provider validates bearer tokens issued by the identity provider and, for
// local development, mints compatible ones.
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	GenerateToken(claims *Claims, expiry time.Duration) (string, error)
}

type jwtAuth struct {
	cfg config.AuthConfig
}

func NewProvider(cfg *config.Configuration) Provider {
	return &jwtAuth{cfg: cfg.Auth}
}

func (a *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(a.cfg.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	mapClaims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	if a.cfg.Issuer != "" {
		if iss, _ := mapClaims["iss"].(string); iss != a.cfg.Issuer {
			return nil, ierr.NewError("unexpected token issuer").
				WithHint("Token was not issued by the configured identity provider").
				Mark(ierr.ErrPermissionDenied)
		}
	}

	sub, subOk := mapClaims["sub"].(string)
	if !subOk || sub == "" {
		return nil, ierr.NewError("token missing subject").
			WithHint("Token missing subject").
			Mark(ierr.ErrPermissionDenied)
	}

	claims := &Claims{ExternalID: sub}
	claims.FirstName, _ = mapClaims["given_name"].(string)
	claims.LastName, _ = mapClaims["family_name"].(string)
	claims.Email, _ = mapClaims["email"].(string)

	if roles, ok := mapClaims["roles"].([]interface{}); ok {
		claims.Roles = lo.FilterMap(roles, func(r interface{}, _ int) (string, bool) {
			s, ok := r.(string)
			return s, ok
		})
	}
	if tenantID, ok := mapClaims["tenant_id"].(float64); ok {
		claims.TenantID = int64(tenantID)
	}

	return claims, nil
}

func (a *jwtAuth) GenerateToken(claims *Claims, expiry time.Duration) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"sub":         claims.ExternalID,
		"given_name":  claims.FirstName,
		"family_name": claims.LastName,
		"email":       claims.Email,
		"roles":       claims.Roles,
		"tenant_id":   claims.TenantID,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}
	if a.cfg.Issuer != "" {
		mapClaims["iss"] = a.cfg.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(a.cfg.Secret))
}
