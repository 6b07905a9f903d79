package services

import (
	"comandas_server/comanda"
	"comandas_server/lib"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	sm, _ := newTestManager()
	sm.AuthService.params = &structs.ArgonParams{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}
	return sm.AuthService
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	as := newTestAuth(t)
	ctx := context.Background()
	require.NoError(t, as.EnsureOperator(ctx, " Caixa ", "balcao-123", tables.RoleOperator))

	res, err := as.Login(ctx, &structs.AuthRequest{Username: "CAIXA", Password: "balcao-123"})
	require.NoError(t, err)
	assert.Equal(t, "caixa", res.Username)

	claims, err := as.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tables.RoleOperator, claims.Role)

	_, err = as.Login(ctx, &structs.AuthRequest{Username: "caixa", Password: "wrong-pass"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, err = as.Login(ctx, &structs.AuthRequest{Username: "ninguem", Password: "balcao-123"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestEnsureOperatorKeepsExistingPassword(t *testing.T) {
	as := newTestAuth(t)
	ctx := context.Background()
	require.NoError(t, as.EnsureOperator(ctx, "admin", "first-password", tables.RoleAdmin))
	require.NoError(t, as.EnsureOperator(ctx, "admin", "second-password", tables.RoleAdmin))

	_, err := as.Login(ctx, &structs.AuthRequest{Username: "admin", Password: "first-password"})
	assert.NoError(t, err)
}

func TestRegisterOperator(t *testing.T) {
	as := newTestAuth(t)
	ctx := context.Background()

	op, err := as.RegisterOperator(ctx, &structs.RegisterOperatorRequest{Username: "Garcom", Password: "mesa-1234"})
	require.NoError(t, err)
	assert.Equal(t, "garcom", op.Username)
	assert.Equal(t, tables.RoleOperator, op.Role)

	_, err = as.RegisterOperator(ctx, &structs.RegisterOperatorRequest{Username: "garcom", Password: "another-1"})
	assert.True(t, comanda.IsConflict(err))
}
