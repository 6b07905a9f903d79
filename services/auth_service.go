package services

import (
	"comandas_server/lib"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  OperatorStore
	params *structs.ArgonParams
	now    func() time.Time
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, store OperatorStore) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		params: DefaultParams,
		now:    time.Now,
	}
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

// Login checks the credentials and issues an access token. Unknown usernames and wrong
// passwords both yield lib.ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, req *structs.AuthRequest) (*structs.AuthResponse, error) {
	startTime := time.Now()
	username := strings.ToLower(strings.TrimSpace(req.Username))

	operator, err := as.store.GetOperatorByUsername(ctx, username)
	if err != nil {
		as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		return nil, err
	}
	if operator == nil {
		as.logger.Debug("Operator not found during login attempt", gecho.Field("username", username))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, operator.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("operator_id", operator.ID))
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("username", username))
		return nil, lib.ErrInvalidCredentials
	}

	res, err := as.GenerateAccessToken(operator)
	if err != nil {
		return nil, err
	}

	if err := as.store.TouchOperatorLogin(ctx, operator.ID, as.now()); err != nil {
		as.logger.Warn("Failed to record last login", gecho.Field("error", err), gecho.Field("operator_id", operator.ID))
	}

	as.logger.Debug("Operator logged in",
		gecho.Field("operator_id", operator.ID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)
	return res, nil
}

func (as *AuthService) GenerateAccessToken(operator *tables.Operator) (*structs.AuthResponse, error) {
	now := as.now()
	claims := &structs.AuthClaims{
		Sub:      operator.ID,
		Username: operator.Username,
		Role:     operator.Role,
		Iat:      now,
		Exp:      now.Add(as.cfg.Auth.AccessTokenExpiry),
		Jti:      uuid.New(),
	}
	token, err := lib.SignAccessToken(claims, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		as.logger.Error("Failed to sign access token", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &structs.AuthResponse{
		AccessToken: token,
		ExpiresAt:   claims.Exp,
		Username:    operator.Username,
		Role:        operator.Role,
	}, nil
}

func (as *AuthService) ValidateToken(token string) (*structs.AuthClaims, error) {
	return lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
}

// EnsureOperator creates the operator unless one with the username already exists.
func (as *AuthService) EnsureOperator(ctx context.Context, username, password, role string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return errors.New("operator username and password are required")
	}

	existing, err := as.store.GetOperatorByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = as.createOperator(ctx, username, password, role)
	return err
}

// RegisterOperator creates a staff account. A taken username is a conflict.
func (as *AuthService) RegisterOperator(ctx context.Context, req *structs.RegisterOperatorRequest) (*tables.Operator, error) {
	role := req.Role
	if role == "" {
		role = tables.RoleOperator
	}
	return as.createOperator(ctx, strings.ToLower(strings.TrimSpace(req.Username)), req.Password, role)
}

func (as *AuthService) createOperator(ctx context.Context, username, password, role string) (*tables.Operator, error) {
	hash, err := lib.HashPassword(password, as.params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	operator := &tables.Operator{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := as.store.CreateOperator(ctx, operator); err != nil {
		return nil, err
	}
	as.logger.Info("Operator created", gecho.Field("username", username), gecho.Field("role", role))
	return operator, nil
}
