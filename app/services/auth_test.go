package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/testkit"
)

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db, nil)

	_, err := svc.Register(ctx, services.Registration{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, services.Registration{Username: "ann", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.EqualError(t, err, "username already exists")
	assert.EqualValues(t, 1, count(t, db, &models.User{}))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db, nil)

	_, err := svc.Register(ctx, services.Registration{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, services.Registration{Username: "bob", Email: "ANN@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.EqualValues(t, 1, count(t, db, &models.User{}))
}

func TestLoginAndResolve(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db, nil)

	user, err := svc.Register(ctx, services.Registration{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = svc.Login(ctx, "ann", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	tok, err := svc.Login(ctx, "ann", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	claims, err := auth.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	p, err := svc.Resolve(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "user", p.Role)
}

func TestResolveReadsCurrentRole(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewAuthService(db, nil)

	_, err := svc.Register(ctx, services.Registration{Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	tok, err := svc.Login(ctx, "ann", "secret1")
	require.NoError(t, err)

	_, err = svc.MakeAdmin(ctx, "ann")
	require.NoError(t, err)
	_, err = svc.MakeAdmin(ctx, "ann")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	p, err := svc.Resolve(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Role)

	_, err = svc.MakeAdmin(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
