package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/internal/utils/mailing"
	"Go-Recipe-Chat/pkg/jwt"
)

const maxUsernameAttempts = 20

type (
	UserService interface {
		CreateUser(ctx context.Context, req domain.CreateUserRequest) (*entities.User, error)
		GetUser(ctx context.Context, id uint) (*entities.User, error)
		FindByUnique(ctx context.Context, field domain.UniqueField, value string) (*entities.User, error)
		LoginWithIdentity(ctx context.Context, req domain.IdentityLoginRequest) (domain.LoginResponse, error)
		UpdatePresence(ctx context.Context, id uint, online bool) (*entities.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
		log            *logger.Logger
		now            func() time.Time
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	appURL string,
	log *logger.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
		log:            log.With("service", "UserService"),
		now:            time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*entities.User, error) {
	user := &entities.User{
		Username:    strings.TrimSpace(req.Username),
		Email:       normalizeEmail(req.Email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhotoURL:    req.PhotoURL,
		ExternalUID: req.ExternalUID,
		CreatedAt:   s.now(),
	}
	if user.Username == "" || user.Email == "" || user.DisplayName == "" {
		return nil, domain.InvalidArgument("username, email and displayName are required")
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	return s.userRepository.GetUserByID(ctx, id)
}

func (s *userService) FindByUnique(ctx context.Context, field domain.UniqueField, value string) (*entities.User, error) {
	if !field.Valid() {
		return nil, domain.ErrUnknownUniqueKey
	}
	if field == domain.FieldEmail {
		value = normalizeEmail(value)
	}
	return s.userRepository.FindUserBy(ctx, field, value)
}

// LoginWithIdentity links a verified identity-provider account to a local
// user, creating the user on first login, and issues an access token.
func (s *userService) LoginWithIdentity(ctx context.Context, req domain.IdentityLoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.FindUserBy(ctx, domain.FieldExternalUID, req.ExternalUID)
	isNew := false
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.createFromIdentity(ctx, req)
		if err != nil {
			return domain.LoginResponse{}, err
		}
		isNew = true
	case err != nil:
		return domain.LoginResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	if isNew {
		if err := s.mailer.SendMail(user.Email, "Welcome!", mailing.WelcomeBody(user.DisplayName, s.appURL)); err != nil {
			s.log.Warn("welcome mail not sent", "userID", user.ID, "error", err)
		}
	}

	return domain.LoginResponse{Token: token, User: *user, IsNewUser: isNew}, nil
}

func (s *userService) createFromIdentity(ctx context.Context, req domain.IdentityLoginRequest) (*entities.User, error) {
	base := strings.TrimSpace(req.Username)
	if base == "" {
		base = usernameFromEmail(req.Email)
	}
	uid := req.ExternalUID

	for attempt := 1; attempt <= maxUsernameAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s%d", base, attempt)
		}
		user := &entities.User{
			Username:    candidate,
			Email:       normalizeEmail(req.Email),
			DisplayName: strings.TrimSpace(req.DisplayName),
			PhotoURL:    req.PhotoURL,
			ExternalUID: &uid,
			CreatedAt:   s.now(),
		}
		err := s.userRepository.CreateUser(ctx, user)
		if err == nil {
			s.log.Info("user created from identity", "userID", user.ID, "username", user.Username)
			return user, nil
		}
		if !errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
	}
	return nil, domain.ErrUsernameExhausted
}

func (s *userService) UpdatePresence(ctx context.Context, id uint, online bool) (*entities.User, error) {
	return s.userRepository.UpdatePresence(ctx, id, online, s.now())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// usernameFromEmail keeps the letters, digits, dots and underscores of the
// local part before any +tag, padding short results so they pass validation.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(normalizeEmail(email), "@")
	local, _, _ = strings.Cut(local, "+")
	var b strings.Builder
	for _, r := range local {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if runes := []rune(name); len(runes) > 28 {
		name = string(runes[:28])
	}
	for len(name) < 3 {
		name += "_"
	}
	return name
}
