package impl

import (
	"context"
	"fmt"
	"log/slog"

	"member/config"
	deliverycontext "member/internal/delivery/context"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const authCodeMailSubject = "Your verification code"

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	memberRepo repository.MemberRepository
	store      service.RevocationStore
	mailer     service.MailSender
	cfg        *config.Config
	logger     *slog.Logger
}

// VerificationServiceParams holds dependencies for verificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	MemberRepo repository.MemberRepository
	Store      service.RevocationStore
	Mailer     service.MailSender
	Config     *config.Config
	Logger     *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	return &verificationService{
		memberRepo: params.MemberRepo,
		store:      params.Store,
		mailer:     params.Mailer,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendCode mails a verification code for a new registration. The email must
// not belong to an existing member.
func (srv *verificationService) SendCode(ctx context.Context, email string) error {
	srv.log(ctx).Info("Sending verification code", slog.String("email", email))

	if err := srv.requireUnregistered(ctx, email); err != nil {
		return err
	}

	return srv.dispatchCode(ctx, email)
}

// SendCodeToExistingAccount mails a verification code for account recovery.
// The email must belong to an existing member.
func (srv *verificationService) SendCodeToExistingAccount(ctx context.Context, email string) error {
	srv.log(ctx).Info("Sending recovery verification code", slog.String("email", email))

	if err := srv.requireRegistered(ctx, email); err != nil {
		return err
	}

	return srv.dispatchCode(ctx, email)
}

// dispatchCode generates a code, stores it, then mails it. The store write
// happens first: a mail failure leaves the code in place, and resending just
// overwrites the slot.
func (srv *verificationService) dispatchCode(ctx context.Context, email string) error {
	code, err := generateAuthCode()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}

	if err := srv.store.Put(ctx, service.AuthCodeKey(email), code, srv.cfg.Auth.AuthCodeTTL); err != nil {
		srv.log(ctx).Error("Failed to store verification code", slog.Any("error", err), slog.String("email", email))

		return errors.Wrap(err, "failed to store verification code")
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %s.", code, srv.cfg.Auth.AuthCodeTTL)
	if err := srv.mailer.Send(ctx, email, authCodeMailSubject, body); err != nil {
		srv.log(ctx).Error("Failed to mail verification code", slog.Any("error", err), slog.String("email", email))

		return errors.Wrap(err, "failed to mail verification code")
	}

	srv.log(ctx).Info("Verification code sent", slog.String("email", email))

	return nil
}

// VerifyNewAccountCode reports whether the presented code matches the stored
// one for a not-yet-registered email. Mismatch and expiry are a false result,
// not an error.
func (srv *verificationService) VerifyNewAccountCode(ctx context.Context, email string, code string) (bool, error) {
	if err := srv.requireUnregistered(ctx, email); err != nil {
		return false, err
	}

	return srv.matchCode(ctx, email, code)
}

// VerifyExistingAccountCode reports whether the presented code matches the
// stored one for a registered email.
func (srv *verificationService) VerifyExistingAccountCode(ctx context.Context, email string, code string) (bool, error) {
	if err := srv.requireRegistered(ctx, email); err != nil {
		return false, err
	}

	return srv.matchCode(ctx, email, code)
}

// matchCode compares the presented code against the stored slot. Verifying
// does not consume the code; only expiry does.
func (srv *verificationService) matchCode(ctx context.Context, email, code string) (bool, error) {
	stored, err := srv.store.Get(ctx, service.AuthCodeKey(email))
	if err != nil {
		if errors.Is(err, service.ErrKeyAbsent) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to read verification code")
	}

	return code != "" && stored == code, nil
}

// requireUnregistered fails with ErrDuplicateEmail when the email already
// belongs to a member.
func (srv *verificationService) requireUnregistered(ctx context.Context, email string) error {
	_, err := srv.memberRepo.FindByEmail(ctx, email)
	if err == nil {
		return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return errors.Wrap(err, "failed to check for existing member")
	}

	return nil
}

// requireRegistered fails with ErrMemberNotFound when no member owns the email.
func (srv *verificationService) requireRegistered(ctx context.Context, email string) error {
	_, err := srv.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return domainerrors.ErrMemberNotFound.WrapMessage("email not registered")
		}

		return errors.Wrap(err, "failed to check for existing member")
	}

	return nil
}
