package usecase

import "context"

// VerificationUsecase defines the interface for email verification codes.
// Codes are short-lived and bound to a single email address; verifying a
// code never consumes it, expiry does.
type VerificationUsecase interface {
	// SendCode mails a verification code for a new registration. The email
	// must not belong to an existing member.
	SendCode(ctx context.Context, email string) error

	// SendCodeToExistingAccount mails a verification code for account
	// recovery. The email must belong to an existing member.
	SendCodeToExistingAccount(ctx context.Context, email string) error

	// VerifyNewAccountCode reports whether the presented code matches the
	// stored one for a not-yet-registered email. A mismatch or an expired
	// code is a false result, not an error.
	VerifyNewAccountCode(ctx context.Context, email string, code string) (bool, error)

	// VerifyExistingAccountCode reports whether the presented code matches
	// the stored one for a registered email.
	VerifyExistingAccountCode(ctx context.Context, email string, code string) (bool, error)
}
