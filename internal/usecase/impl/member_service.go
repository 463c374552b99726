package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "member/internal/delivery/context"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const tempPasswordMailSubject = "Your temporary password"

// memberService implements the MemberUsecase interface.
type memberService struct {
	memberRepo repository.MemberRepository
	hasher     service.PasswordHasher
	store      service.RevocationStore
	mailer     service.MailSender
	logger     *slog.Logger
}

// MemberServiceParams holds dependencies for memberService, injected by Fx.
type MemberServiceParams struct {
	fx.In

	MemberRepo repository.MemberRepository
	Hasher     service.PasswordHasher
	Store      service.RevocationStore
	Mailer     service.MailSender
	Logger     *slog.Logger
}

// NewMemberService is the constructor for memberService. It receives all dependencies as interfaces.
func NewMemberService(params MemberServiceParams) usecase.MemberUsecase {
	return &memberService{
		memberRepo: params.MemberRepo,
		hasher:     params.Hasher,
		store:      params.Store,
		mailer:     params.Mailer,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *memberService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetMember returns the member's public profile.
func (srv *memberService) GetMember(ctx context.Context, email string) (*entity.Summary, error) {
	member, err := srv.findMember(ctx, email)
	if err != nil {
		return nil, err
	}

	return entity.Summarize(member), nil
}

// ModifyInfo updates the member's name and phone number.
func (srv *memberService) ModifyInfo(ctx context.Context, input usecase.ModifyInfoInput) (*entity.Summary, error) {
	srv.log(ctx).Info("Modifying member info", slog.String("email", input.Email))

	member, err := srv.findMember(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	member.Name = input.Name
	member.Phone = input.Phone
	if err := srv.memberRepo.Update(ctx, member); err != nil {
		srv.log(ctx).Error("Failed to update member info", slog.Any("error", err), slog.String("email", input.Email))

		return nil, err
	}

	srv.log(ctx).Info("Successfully modified member info", slog.String("email", input.Email))

	return entity.Summarize(member), nil
}

// ModifyPassword replaces the member's password after checking the old one.
func (srv *memberService) ModifyPassword(ctx context.Context, input usecase.ModifyPasswordInput) error {
	srv.log(ctx).Info("Modifying password", slog.String("email", input.Email))

	member, err := srv.findMember(ctx, input.Email)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.OldPassword, member.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("old password mismatch")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	member.PasswordHash = hash
	if err := srv.memberRepo.Update(ctx, member); err != nil {
		srv.log(ctx).Error("Failed to update password", slog.Any("error", err), slog.String("email", input.Email))

		return err
	}

	srv.log(ctx).Info("Successfully modified password", slog.String("email", input.Email))

	return nil
}

// ForwardTempPassword mails a freshly generated temporary password and stores
// its hash. The account keeps its old password if the mail cannot be sent.
func (srv *memberService) ForwardTempPassword(ctx context.Context, input usecase.ForwardTempPasswordInput) error {
	srv.log(ctx).Info("Issuing temporary password", slog.String("email", input.Email))

	member, err := srv.findMember(ctx, input.Email)
	if err != nil {
		return err
	}
	if member.Phone == "" || member.Phone != input.Phone {
		return domainerrors.ErrPhoneMismatch.WrapMessage("phone does not match the account")
	}
	if err := srv.checkAuthCode(ctx, input.Email, input.AuthCode); err != nil {
		return err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return errors.Wrap(err, "failed to generate temporary password")
	}

	// Mail first. If delivery fails the member's password is untouched.
	body := fmt.Sprintf("Your temporary password is %s. Please sign in and change it right away.", tempPassword)
	if err := srv.mailer.Send(ctx, input.Email, tempPasswordMailSubject, body); err != nil {
		srv.log(ctx).Error("Failed to mail temporary password", slog.Any("error", err), slog.String("email", input.Email))

		return errors.Wrap(err, "failed to mail temporary password")
	}

	hash, err := srv.hasher.Hash(tempPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash temporary password")
	}

	member.PasswordHash = hash
	if err := srv.memberRepo.Update(ctx, member); err != nil {
		srv.log(ctx).Error("Failed to store temporary password", slog.Any("error", err), slog.String("email", input.Email))

		return err
	}

	if err := srv.store.Delete(ctx, service.AuthCodeKey(input.Email)); err != nil {
		srv.log(ctx).Warn("Failed to drop used verification code", slog.Any("error", err), slog.String("email", input.Email))
	}

	srv.log(ctx).Info("Temporary password issued", slog.String("email", input.Email))

	return nil
}

// FindRegisteredEmail looks up the email registered under a phone number.
// The caller proves control of that email through a verification code sent
// there beforehand.
func (srv *memberService) FindRegisteredEmail(ctx context.Context, input usecase.FindEmailInput) (string, error) {
	member, err := srv.memberRepo.FindByPhone(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return "", domainerrors.ErrMemberNotFound.WrapMessage("no account for this phone number")
		}

		return "", errors.Wrap(err, "failed to find member by phone")
	}

	if err := srv.checkAuthCode(ctx, member.Email, input.AuthCode); err != nil {
		return "", err
	}

	return member.Email, nil
}

// Withdraw deletes the member's account after a password check and clears the
// refresh slot so the session cannot be renewed.
func (srv *memberService) Withdraw(ctx context.Context, input usecase.WithdrawInput) error {
	srv.log(ctx).Info("Withdrawing member", slog.String("email", input.Email))

	member, err := srv.findMember(ctx, input.Email)
	if err != nil {
		return err
	}
	if !srv.hasher.Check(input.Password, member.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	if err := srv.memberRepo.Delete(ctx, input.Email); err != nil {
		srv.log(ctx).Error("Failed to delete member", slog.Any("error", err), slog.String("email", input.Email))

		return err
	}

	if err := srv.store.Delete(ctx, service.RefreshKey(input.Email)); err != nil {
		srv.log(ctx).Warn("Failed to clear refresh slot", slog.Any("error", err), slog.String("email", input.Email))
	}

	srv.log(ctx).Info("Successfully withdrew member", slog.String("email", input.Email))

	return nil
}

// findMember loads a member, mapping the repository sentinel to the domain error.
func (srv *memberService) findMember(ctx context.Context, email string) (*entity.Member, error) {
	member, err := srv.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, domainerrors.ErrMemberNotFound.WrapMessage("member not found")
		}

		return nil, errors.Wrap(err, "failed to find member")
	}

	return member, nil
}

// checkAuthCode compares the presented code against the stored slot.
func (srv *memberService) checkAuthCode(ctx context.Context, email, code string) error {
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
