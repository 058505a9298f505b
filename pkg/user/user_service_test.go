package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/store"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/pkg/jwt"
)

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendMail(to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newTestService(t *testing.T) (UserService, *recordingMailer) {
	t.Helper()
	mailer := &recordingMailer{}
	svc := NewUserService(
		NewMemoryUserRepository(store.New()),
		jwt.NewJWTService("test-secret", time.Hour),
		mailer,
		"http://localhost:5173",
		logger.Nop(),
	)
	return svc, mailer
}

func strPtr(s string) *string { return &s }

func TestCreateUserRejectsDuplicateUniqueFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Username: "alice", Email: "alice@example.com", DisplayName: "Alice", ExternalUID: strPtr("alice-uid"),
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		req  domain.CreateUserRequest
		want error
	}{
		{"username", domain.CreateUserRequest{Username: "alice", Email: "other@example.com", DisplayName: "A"}, domain.ErrUsernameTaken},
		{"email", domain.CreateUserRequest{Username: "alice2", Email: "ALICE@example.com", DisplayName: "A"}, domain.ErrEmailTaken},
		{"external uid", domain.CreateUserRequest{Username: "alice3", Email: "a3@example.com", DisplayName: "A", ExternalUID: strPtr("alice-uid")}, domain.ErrExternalUIDTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.req)
			require.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}

	u, err := svc.FindByUnique(ctx, domain.FieldUsername, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	_, err = svc.FindByUnique(ctx, domain.FieldUsername, "alice2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Username: "bob", Email: "bob@example.com", DisplayName: "Bob", ExternalUID: strPtr("bob-uid"),
	})
	require.NoError(t, err)

	for field, value := range map[domain.UniqueField]string{
		domain.FieldUsername:    "bob",
		domain.FieldEmail:       " Bob@Example.com ",
		domain.FieldExternalUID: "bob-uid",
	} {
		got, err := svc.FindByUnique(ctx, field, value)
		require.NoError(t, err, field)
		assert.Equal(t, created.ID, got.ID)
	}

	_, err = svc.FindByUnique(ctx, domain.UniqueField("displayName"), "Bob")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestLoginWithIdentityCreatesUserOnce(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()
	req := domain.IdentityLoginRequest{ExternalUID: "g-123", Email: "carol.smith@example.com", DisplayName: "Carol"}

	first, err := svc.LoginWithIdentity(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.IsNewUser)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "carol.smith", first.User.Username)

	second, err := svc.LoginWithIdentity(ctx, req)
	require.NoError(t, err)
	assert.False(t, second.IsNewUser)
	assert.Equal(t, first.User.ID, second.User.ID)

	assert.Equal(t, []string{"carol.smith@example.com"}, mailer.sent)
}

func TestLoginWithIdentitySuffixesTakenUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{Username: "dave", Email: "dave@old.example.com", DisplayName: "Dave"})
	require.NoError(t, err)

	res, err := svc.LoginWithIdentity(ctx, domain.IdentityLoginRequest{
		ExternalUID: "g-dave", Email: "dave@example.com", DisplayName: "Dave",
	})
	require.NoError(t, err)
	assert.Equal(t, "dave2", res.User.Username)
}

func TestUpdatePresence(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, domain.CreateUserRequest{Username: "erin", Email: "erin@example.com", DisplayName: "Erin"})
	require.NoError(t, err)
	assert.False(t, u.IsOnline)
	assert.Nil(t, u.LastSeen)

	updated, err := svc.UpdatePresence(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsOnline)
	assert.NotNil(t, updated.LastSeen)

	_, err = svc.UpdatePresence(ctx, 999, true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "jo_", usernameFromEmail("jo@example.com"))
	assert.Equal(t, "ann.lee", usernameFromEmail("Ann.Lee+news@example.com"))
}
