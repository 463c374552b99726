package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/infra/persistence/model"
)

// memberRepository implements the repository.MemberRepository interface using GORM.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository is the constructor for memberRepository.
// It returns the repository as a repository.MemberRepository interface, adhering to dependency inversion.
func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

// FindByEmail retrieves a single member by email, preloading their roles.
func (repo *memberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var memberM model.MemberModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("email = ?", email).
		First(&memberM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by email")
	}

	return toMemberDomain(&memberM), nil
}

// FindByPhone retrieves a single member by phone number, preloading their roles.
func (repo *memberRepository) FindByPhone(ctx context.Context, phone string) (*entity.Member, error) {
	var memberM model.MemberModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("phone = ?", phone).
		First(&memberM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by phone")
	}

	return toMemberDomain(&memberM), nil
}

// Create persists a new member entity together with its roles. GORM creates
// the member row and its role rows within a single transaction.
func (repo *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	memberM := fromMemberDomain(member)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required member information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create member")
	}

	// Propagate generated values back onto the entity.
	member.ID = memberM.ID
	member.CreatedAt = memberM.CreatedAt
	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// Update modifies an existing member entity in the database.
func (repo *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	memberM := fromMemberDomain(member)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(memberM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update member")
	}

	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// Delete removes a member and, through the cascade constraint, their roles.
func (repo *memberRepository) Delete(ctx context.Context, email string) error {
	result := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.MemberModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete member")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMemberNotFound
	}

	return nil
}

// toMemberDomain maps the persistence model back to a pure domain entity.
func toMemberDomain(m *model.MemberModel) *entity.Member {
	roles := make(entity.Roles, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, entity.Role(r.Name))
	}

	return &entity.Member{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Phone:        m.Phone,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// fromMemberDomain maps a domain entity to its persistence model.
func fromMemberDomain(member *entity.Member) *model.MemberModel {
	roles := make([]model.RoleModel, 0, len(member.Roles))
	for _, r := range member.Roles {
		roles = append(roles, model.RoleModel{MemberID: member.ID, Name: r.String()})
	}

	return &model.MemberModel{
		ID:           member.ID,
		Email:        member.Email,
		PasswordHash: member.PasswordHash,
		Name:         member.Name,
		Phone:        member.Phone,
		Roles:        roles,
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	}
}
