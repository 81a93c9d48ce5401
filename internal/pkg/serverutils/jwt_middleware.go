package serverutils

import (
	"strings"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "principal"

type AuthClaims struct {
	Id           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	RoleId       uuid.UUID  `json:"roleId"`
	RoleName     string     `json:"roleName"`
	Privileges   []string   `json:"privileges"`
	ContractorId *uuid.UUID `json:"contractorId,omitempty"`
	jwt.RegisteredClaims
}

func (c *AuthClaims) Principal() *entity.Principal {
	principal := &entity.Principal{
		UserId:       c.Id,
		Username:     c.Username,
		RoleId:       c.RoleId,
		RoleName:     c.RoleName,
		Privileges:   entity.NewPrivilegeSet(c.Privileges...),
		ContractorId: c.ContractorId,
	}
	if c.ExpiresAt != nil {
		principal.ExpiresAt = c.ExpiresAt.Time
	}
	return principal
}

type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// Parse verifies an HS256 token and returns the caller it describes.
func (v *TokenVerifier) Parse(tokenStr string) (*entity.Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}
	if claims.Id == uuid.Nil {
		return nil, apperr.Unauthenticated("token carries no user id")
	}
	return claims.Principal(), nil
}

// Sign is used by the seeder and tests to mint tokens for a principal.
func (v *TokenVerifier) Sign(claims AuthClaims) (string, error) {
	if v.issuer != "" && claims.Issuer == "" {
		claims.Issuer = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *TokenVerifier) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperr.Unauthenticated("missing token")
		}

		principal, err := v.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return err
		}

		ctx.Locals(principalKey, principal)
		return ctx.Next()
	}
}

// RequirePrivileges must run after Middleware. Missing principal counts as no
// privileges.
func RequirePrivileges(required ...entity.Privilege) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		principal := GetPrincipal(ctx)
		if principal == nil || !principal.Privileges.HasAll(required...) {
			return apperr.Forbidden("insufficient privileges")
		}
		return ctx.Next()
	}
}

func GetPrincipal(ctx *fiber.Ctx) *entity.Principal {
	principal, _ := ctx.Locals(principalKey).(*entity.Principal)
	return principal
}
