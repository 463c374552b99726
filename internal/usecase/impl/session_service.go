// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"member/config"
	deliverycontext "member/internal/delivery/context"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// blacklistMarker is the value stored under a revoked access token's key.
// Only the key's presence matters.
const blacklistMarker = "logout"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	memberRepo repository.MemberRepository
	hasher     service.PasswordHasher
	codec      service.TokenCodec
	store      service.RevocationStore
	cfg        *config.Config
	logger     *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	MemberRepo repository.MemberRepository
	Hasher     service.PasswordHasher
	Codec      service.TokenCodec
	Store      service.RevocationStore
	Config     *config.Config
	Logger     *slog.Logger
}

// NewSessionService is the constructor for sessionService. It receives all dependencies as interfaces.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		memberRepo: params.MemberRepo,
		hasher:     params.Hasher,
		codec:      params.Codec,
		store:      params.Store,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new member account with the default role. The email must
// not already be registered and must carry a live verification code.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// 1. Reject emails that already belong to an account.
	_, err := srv.memberRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing member")
	}

	// 2. The verification code sent to the email must still match.
	if err := srv.checkAuthCode(ctx, input.Email, input.AuthCode); err != nil {
		return nil, err
	}

	// 3. Hash the password and persist the member. The unique constraint on
	// email closes the race between the check above and the insert.
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	member := &entity.Member{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Roles:        entity.Roles{entity.RoleUser},
	}
	if err := srv.memberRepo.Create(ctx, member); err != nil {
		srv.log(ctx).Error("Failed to create member", slog.Any("error", err), slog.String("email", input.Email))

		return nil, err
	}

	// 4. The code is single-use; drop it now that the account exists.
	if err := srv.store.Delete(ctx, service.AuthCodeKey(input.Email)); err != nil {
		srv.log(ctx).Warn("Failed to drop used verification code", slog.Any("error", err), slog.String("email", input.Email))
	}

	srv.log(ctx).Info("Successfully registered member", slog.String("email", input.Email))

	return &usecase.RegisterOutput{Member: entity.Summarize(member)}, nil
}

// checkAuthCode compares the presented code against the stored slot.
func (srv *sessionService) checkAuthCode(ctx context.Context, email, code string) error {
	stored, err := srv.store.Get(ctx, service.AuthCodeKey(email))
	if err != nil {
		if errors.Is(err, service.ErrKeyAbsent) {
			return domainerrors.ErrAuthCodeInvalid.WrapMessage("no pending verification code")
		}

		return errors.Wrap(err, "failed to read verification code")
	}
	if code == "" || stored != code {
		return domainerrors.ErrAuthCodeInvalid.WrapMessage("verification code mismatch")
	}

	return nil
}

// Login authenticates a member and mints a fresh token pair. Unknown emails
// and wrong passwords produce the same error so accounts cannot be enumerated.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Login attempt", slog.String("email", input.Email))

	member, err := srv.memberRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find member")
	}

	if !srv.hasher.Check(input.Password, member.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	roles := member.Roles.ToStrings()
	accessToken, err := srv.codec.Issue(member.Email, roles, entity.TokenKindAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}
	refreshToken, err := srv.codec.Issue(member.Email, roles, entity.TokenKindRefresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	// One refresh slot per account. Overwriting it supersedes any session
	// still holding the previous refresh token.
	if err := srv.store.Put(ctx, service.RefreshKey(member.Email), refreshToken, srv.cfg.Auth.RefreshTTL); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Successfully logged in", slog.String("email", member.Email))

	return &usecase.LoginOutput{
		Member: entity.Summarize(member),
		Tokens: entity.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

// Refresh validates a presented refresh token against the stored slot and
// mints a new access token. The refresh token itself is left in place.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	claims, err := srv.codec.Decode(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshInvalid.Wrap(err)
	}
	if claims.Kind != entity.TokenKindRefresh {
		return nil, domainerrors.ErrRefreshInvalid.WrapMessage("not a refresh token")
	}

	// The token must be the one currently occupying the account's slot.
	// A superseded or signed-out token decodes fine but no longer matches.
	stored, err := srv.store.Get(ctx, service.RefreshKey(claims.Subject))
	if err != nil {
		if errors.Is(err, service.ErrKeyAbsent) {
			return nil, domainerrors.ErrRefreshInvalid.WrapMessage("no active session")
		}

		return nil, errors.Wrap(err, "failed to read refresh slot")
	}
	if stored != refreshToken {
		return nil, domainerrors.ErrRefreshInvalid.WrapMessage("refresh token superseded")
	}

	accessToken, err := srv.codec.Issue(claims.Subject, claims.Roles, entity.TokenKindAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Reissued access token", slog.String("email", claims.Subject))

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout clears the member's refresh slot and blacklists the access token for
// the remainder of its lifetime. Repeating the call changes nothing.
func (srv *sessionService) Logout(ctx context.Context, accessToken string) error {
	claims, err := srv.codec.Decode(accessToken)
	if err != nil {
		return err
	}
	if claims.Kind != entity.TokenKindAccess {
		return domainerrors.ErrTokenMalformed.WrapMessage("not an access token")
	}

	if err := srv.store.Delete(ctx, service.RefreshKey(claims.Subject)); err != nil {
		return errors.Wrap(err, "failed to clear refresh slot")
	}

	// Size the blacklist entry to the token's remaining validity so the
	// entry never outlives the token.
	ttl, err := srv.codec.RemainingTTL(accessToken)
	if err != nil {
		return errors.Wrap(err, "failed to compute remaining token lifetime")
	}
	if ttl > 0 {
		if err := srv.store.Put(ctx, accessToken, blacklistMarker, ttl); err != nil {
			return errors.Wrap(err, "failed to blacklist access token")
		}
	}

	srv.log(ctx).Info("Successfully signed out", slog.String("email", claims.Subject))

	return nil
}

// ValidateAccess decodes an access token and checks the blacklist. Store
// unavailability is returned as-is so callers fail closed.
func (srv *sessionService) ValidateAccess(ctx context.Context, accessToken string) (*service.Claims, error) {
	claims, err := srv.codec.Decode(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != entity.TokenKindAccess {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("not an access token")
	}

	_, err = srv.store.Get(ctx, accessToken)
	switch {
	case err == nil:
		return nil, domainerrors.ErrTokenRevoked.WrapMessage("access token blacklisted")
	case errors.Is(err, service.ErrKeyAbsent):
		return claims, nil
	default:
		return nil, errors.Wrap(err, "failed to check token blacklist")
	}
}
