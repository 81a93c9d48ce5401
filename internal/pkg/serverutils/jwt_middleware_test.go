package serverutils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claims(privileges ...string) serverutils.AuthClaims {
	return serverutils.AuthClaims{
		Id:         uuid.New(),
		Username:   "finance",
		RoleId:     uuid.New(),
		RoleName:   "Finance Officer",
		Privileges: privileges,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestTokenVerifier_Parse(t *testing.T) {
	verifier := serverutils.NewTokenVerifier("secret", "impes")
	c := claims("payment_request.read")

	token, err := verifier.Sign(c)
	require.NoError(t, err)

	principal, err := verifier.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, c.Id, principal.UserId)
	assert.Equal(t, c.RoleId, principal.RoleId)
	assert.True(t, principal.Privileges.Has(entity.PrivilegePaymentRequestRead))
	assert.False(t, principal.Privileges.Has(entity.PrivilegePaymentRequestUpdate))

	tests := []struct {
		name  string
		token func() string
	}{
		{"wrong secret", func() string {
			tok, _ := serverutils.NewTokenVerifier("other", "impes").Sign(c)
			return tok
		}},
		{"wrong issuer", func() string {
			tok, _ := serverutils.NewTokenVerifier("secret", "someone-else").Sign(c)
			return tok
		}},
		{"expired", func() string {
			expired := claims()
			expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			tok, _ := verifier.Sign(expired)
			return tok
		}},
		{"garbage", func() string { return "not.a.token" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Parse(tt.token())
			assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
		})
	}
}

func TestMiddleware_PrivilegeGate(t *testing.T) {
	verifier := serverutils.NewTokenVerifier("secret", "")
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(logger.NewNopLogger())})
	app.Get("/levels", verifier.Middleware(), serverutils.RequirePrivileges(entity.PrivilegeApprovalLevelRead), func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("ok", serverutils.GetPrincipal(ctx).Username))
	})

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/levels", nil)
		if token != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	allowed, err := verifier.Sign(claims("approval_level.read"))
	require.NoError(t, err)
	denied, err := verifier.Sign(claims("payment_request.read"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(""))
	assert.Equal(t, http.StatusForbidden, call(denied))
	assert.Equal(t, http.StatusOK, call(allowed))
}

func TestValidateRequest_FoldsFieldErrors(t *testing.T) {
	type body struct {
		Name   string  `validate:"required"`
		Amount float64 `validate:"gt=0"`
	}

	err := serverutils.ValidateRequest(body{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "amount must be greater than 0")

	assert.NoError(t, serverutils.ValidateRequest(body{Name: "x", Amount: 1}))
}
