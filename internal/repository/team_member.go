package repository

import (
	"context"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// List returns team members, oldest first.
func (r *TeamMemberRepository) List(ctx context.Context) ([]*model.TeamMember, error) {
	var members []*model.TeamMember
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *model.TeamMember) error {
	return translate(r.db.WithContext(ctx).Create(member).Error)
}

// Delete removes a member and returns the deleted row.
func (r *TeamMemberRepository) Delete(ctx context.Context, id string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&member).Error; err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}
