package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-booking-api/internal/auth"
	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/repositories/repotest"
	"interview-booking-api/internal/validators"
	"interview-booking-api/pkg/metrics"
)

const testSecret = "test-secret"

func newAuthService() (*AuthService, *repotest.Users) {
	users := repotest.NewUsers()
	return NewAuthService(users, validators.NewUserValidator(), testSecret, time.Hour), users
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Tel: "0812345678", Password: "secret1"}
}

func TestRegisterHashesPasswordAndSignsToken(t *testing.T) {
	svc, users := newAuthService()

	user, token, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.Equal(t, models.RoleUser, stored.Role)

	claims, err := auth.ValidateJWT(token.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	_, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	registered, _, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "Jane@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token.Token)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	registered, token, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	other, err := auth.GenerateJWT(registered.ID.Hex(), models.RoleUser, "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, other.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestPasswordTimingsHaveTheirOwnSeries(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, _, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(metrics.PasswordHashDuration))
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	samples := map[string]uint64{}
	for _, m := range families[0].GetMetric() {
		samples[m.GetLabel()[0].GetValue()] = m.GetHistogram().GetSampleCount()
	}
	assert.NotZero(t, samples["hash"])
	assert.NotZero(t, samples["compare"])
	assert.False(t, metrics.MongoOperationDuration.DeleteLabelValues("hash_password", ""))
}
