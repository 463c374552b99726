package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/domain/service"
	mockRepo "member/internal/mocks/repository"
	mockSvc "member/internal/mocks/service"
	"member/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// verificationServiceFixtures holds all test dependencies for verification service tests.
type verificationServiceFixtures struct {
	service    usecase.VerificationUsecase
	memberRepo *mockRepo.MockMemberRepository
	store      *mockSvc.MockRevocationStore
	mailer     *mockSvc.MockMailSender
}

func createTestVerificationService(t *testing.T) verificationServiceFixtures {
	memberRepo := mockRepo.NewMockMemberRepository(t)
	store := mockSvc.NewMockRevocationStore(t)
	mailer := mockSvc.NewMockMailSender(t)

	svc := NewVerificationService(VerificationServiceParams{
		MemberRepo: memberRepo,
		Store:      store,
		Mailer:     mailer,
		Config:     newTestConfig(),
		Logger:     newDiscardLogger(),
	})

	return verificationServiceFixtures{
		service:    svc,
		memberRepo: memberRepo,
		store:      store,
		mailer:     mailer,
	}
}

func TestVerificationService_SendCode_Success(t *testing.T) {
	f := createTestVerificationService(t)
	ctx := context.Background()

	var storedCode string
	f.memberRepo.On("FindByEmail", ctx, "bob@example.com").Return(nil, repository.ErrMemberNotFound)
	f.store.On("Put", ctx, service.AuthCodeKey("bob@example.com"), mock.AnythingOfType("string"), 5*time.Minute).
		Run(func(args mock.Arguments) {
			storedCode = args.String(2)
		}).
		Return(nil)
	f.mailer.On("Send", ctx, "bob@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			assert.Contains(t, args.String(3), storedCode)
		}).
		Return(nil)

	err := f.service.SendCode(ctx, "bob@example.com")

	require.NoError(t, err)
	assert.Len(t, storedCode, 6)
	for _, c := range storedCode {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestVerificationService_SendCode_DuplicateEmail(t *testing.T) {
	f := createTestVerificationService(t)
	ctx := context.Background()

	f.memberRepo.On("FindByEmail", ctx, "alice@example.com").Return(testMember(), nil)

	err := f.service.SendCode(ctx, "alice@example.com")

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	assert.NotErrorIs(t, err, domainerrors.ErrMailDeliveryFailed)
}

func TestVerificationService_SendCode_MailFailureKeepsCode(t *testing.T) {
	f := createTestVerificationService(t)
	ctx := context.Background()

	f.memberRepo.On("FindByEmail", ctx, "bob@example.com").Return(nil, repository.ErrMemberNotFound)
	f.store.On("Put", ctx, service.AuthCodeKey("bob@example.com"), mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("Send", ctx, "bob@example.com", mock.Anything, mock.Anything).
		Return(domainerrors.ErrMailDeliveryFailed.WrapMessage("smtp down"))

	err := f.service.SendCode(ctx, "bob@example.com")

	// The store write precedes dispatch, so the code survives the failure
	// and a resend simply overwrites the slot.
	assert.ErrorIs(t, err, domainerrors.ErrMailDeliveryFailed)
	f.store.AssertCalled(t, "Put", ctx, service.AuthCodeKey("bob@example.com"), mock.Anything, mock.Anything)
}

func TestVerificationService_SendCodeToExistingAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("registered email", func(t *testing.T) {
		f := createTestVerificationService(t)
		member := testMember()
		f.memberRepo.On("FindByEmail", ctx, member.Email).Return(member, nil)
		f.store.On("Put", ctx, service.AuthCodeKey(member.Email), mock.Anything, mock.Anything).Return(nil)
		f.mailer.On("Send", ctx, member.Email, mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, f.service.SendCodeToExistingAccount(ctx, member.Email))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrMemberNotFound)

		err := f.service.SendCodeToExistingAccount(ctx, "ghost@example.com")

		assert.ErrorIs(t, err, domainerrors.ErrMemberNotFound)
	})
}

func TestVerificationService_VerifyNewAccountCode(t *testing.T) {
	ctx := context.Background()

	t.Run("matching code", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "bob@example.com").Return(nil, repository.ErrMemberNotFound)
		f.store.On("Get", ctx, service.AuthCodeKey("bob@example.com")).Return("123456", nil)

		ok, err := f.service.VerifyNewAccountCode(ctx, "bob@example.com", "123456")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mismatch is false not error", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "bob@example.com").Return(nil, repository.ErrMemberNotFound)
		f.store.On("Get", ctx, service.AuthCodeKey("bob@example.com")).Return("123456", nil)

		ok, err := f.service.VerifyNewAccountCode(ctx, "bob@example.com", "999999")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired code is false not error", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "bob@example.com").Return(nil, repository.ErrMemberNotFound)
		f.store.On("Get", ctx, service.AuthCodeKey("bob@example.com")).Return("", service.ErrKeyAbsent)

		ok, err := f.service.VerifyNewAccountCode(ctx, "bob@example.com", "123456")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("registered email rejected", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "alice@example.com").Return(testMember(), nil)

		_, err := f.service.VerifyNewAccountCode(ctx, "alice@example.com", "123456")

		assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	})
}

func TestVerificationService_VerifyExistingAccountCode(t *testing.T) {
	ctx := context.Background()

	t.Run("matching code", func(t *testing.T) {
		f := createTestVerificationService(t)
		member := testMember()
		f.memberRepo.On("FindByEmail", ctx, member.Email).Return(member, nil)
		f.store.On("Get", ctx, service.AuthCodeKey(member.Email)).Return("123456", nil)

		ok, err := f.service.VerifyExistingAccountCode(ctx, member.Email, "123456")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		f := createTestVerificationService(t)
		f.memberRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrMemberNotFound)

		_, err := f.service.VerifyExistingAccountCode(ctx, "ghost@example.com", "123456")

		assert.ErrorIs(t, err, domainerrors.ErrMemberNotFound)
	})

	t.Run("store unavailable is an error", func(t *testing.T) {
		f := createTestVerificationService(t)
		member := testMember()
		f.memberRepo.On("FindByEmail", ctx, member.Email).Return(member, nil)
		f.store.On("Get", ctx, service.AuthCodeKey(member.Email)).
			Return("", domainerrors.ErrStoreUnavailable.WrapMessage("redis down"))

		_, err := f.service.VerifyExistingAccountCode(ctx, member.Email, "123456")

		assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
	})
}
