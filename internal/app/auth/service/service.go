package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumenchat/auth-service/internal/adapters/transport/http/dto"
	"github.com/lumenchat/auth-service/internal/app/auth/password"
	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
	"github.com/lumenchat/auth-service/internal/domain/auth/model"
	"github.com/lumenchat/auth-service/internal/domain/auth/repo"
	"github.com/lumenchat/auth-service/internal/domain/auth/storage"
	"github.com/lumenchat/auth-service/internal/domain/auth/token"
	"github.com/lumenchat/auth-service/internal/infra/config"
)

type Service interface {
	Signup(ctx context.Context, in dto.SignupRequest) (model.Session, model.User, error)
	Login(ctx context.Context, in dto.LoginRequest) (model.Session, model.User, error)
	Authenticate(ctx context.Context, rawToken string) (model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileRequest) (model.User, error)
}

type authService struct {
	userRepo  repo.UserRepo
	userCache repo.UserCache
	store     storage.ObjectStore
	hasher    password.Hasher
	issuer    token.Issuer
	cfg       *config.Config
	v         *validator.Validate
	log       *zap.Logger
}

func New(
	ur repo.UserRepo,
	uc repo.UserCache,
	os storage.ObjectStore,
	h password.Hasher,
	iss token.Issuer,
	cfg *config.Config,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		userRepo: ur, userCache: uc, store: os,
		hasher: h, issuer: iss, cfg: cfg, v: v, log: log,
	}
}

func (a *authService) Signup(ctx context.Context, in dto.SignupRequest) (model.Session, model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	_, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return model.Session{}, model.User{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.Session{}, model.User{}, customErrors.WrapInternal(err, "Signup")
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.Session{}, model.User{}, err
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: passwordHash,
		FullName:     in.FullName,
		Bio:          in.Bio,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		// The unique index decides races between lookup and create.
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.Session{}, model.User{}, customErrors.ErrAlreadyExists
		}
		return model.Session{}, model.User{}, customErrors.WrapInternal(err, "Signup")
	}

	sess, err := a.session(user.ID)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	return sess, user.Sanitized(), nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginRequest) (model.Session, model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		if a.cfg.LoginRevealsAccount {
			return model.Session{}, model.User{}, customErrors.ErrNotFound
		}
		return model.Session{}, model.User{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.Session{}, model.User{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	if !ok {
		return model.Session{}, model.User{}, customErrors.ErrInvalidCredentials
	}

	sess, err := a.session(user.ID)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	return sess, user.Sanitized(), nil
}

// Authenticate resolves a raw session token to its user. Any failure reads as
// an invalid token; the reason stays in server-side logs only.
func (a *authService) Authenticate(ctx context.Context, rawToken string) (model.User, error) {
	uid, err := a.issuer.Verify(rawToken)
	if err != nil {
		return model.User{}, err
	}

	if cached, ok, cerr := a.userCache.Get(ctx, uid); cerr != nil {
		a.log.Warn("user cache read failed", zap.Error(cerr))
	} else if ok {
		return cached, nil
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Authenticate")
	}

	user = user.Sanitized()
	if cerr := a.userCache.Set(ctx, user); cerr != nil {
		a.log.Warn("user cache write failed", zap.Error(cerr))
	}
	return user, nil
}

func (a *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileRequest) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	patch := model.ProfilePatch{FullName: in.FullName, Bio: in.Bio}

	if in.Avatar != "" {
		payload, contentType, err := decodeAvatar(in.Avatar)
		if err != nil {
			return model.User{}, customErrors.NewInvalidArgument("malformed avatar payload")
		}

		uctx := ctx
		if a.cfg.UploadTimeout > 0 {
			var cancel context.CancelFunc
			uctx, cancel = context.WithTimeout(ctx, a.cfg.UploadTimeout)
			defer cancel()
		}

		// Upload failure aborts the whole update; name and bio must not land
		// without the avatar they were submitted with.
		url, err := a.store.Upload(uctx, payload, contentType)
		if err != nil {
			return model.User{}, customErrors.WrapInternal(err, "upload avatar")
		}
		patch.AvatarURL = &url
	}

	user, err := a.userRepo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return model.User{}, customErrors.ErrNotFound
		}
		return model.User{}, customErrors.WrapInternal(err, "UpdateProfile")
	}

	if cerr := a.userCache.Invalidate(ctx, userID); cerr != nil {
		a.log.Warn("user cache invalidation failed", zap.Error(cerr))
	}
	return user.Sanitized(), nil
}

func (a *authService) session(uid uuid.UUID) (model.Session, error) {
	signed, exp, err := a.issuer.Issue(uid)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{
		Token:     signed,
		UserID:    uid,
		ExpiresAt: exp,
		TTL:       time.Until(exp),
	}, nil
}

// decodeAvatar accepts either plain base64 or a data URL
// ("data:image/png;base64,...") as produced by browser file readers.
func decodeAvatar(raw string) ([]byte, string, error) {
	contentType := "application/octet-stream"

	if strings.HasPrefix(raw, "data:") {
		meta, data, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, "", errors.New("data URL without payload")
		}
		meta = strings.TrimPrefix(meta, "data:")
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			contentType = meta
		}
		raw = data
	}

	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", err
	}
	if len(payload) == 0 {
		return nil, "", errors.New("empty payload")
	}
	return payload, contentType, nil
}
