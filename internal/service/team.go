package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
)

type TeamService struct {
	members *repository.TeamMemberRepository
	objects ObjectCleaner
}

func NewTeamService(members *repository.TeamMemberRepository, objects ObjectCleaner) *TeamService {
	return &TeamService{members: members, objects: objects}
}

// TeamMemberInput is the payload for a new team member.
type TeamMemberInput struct {
	Name      string
	Role      string
	AvatarKey *string
}

func (s *TeamService) List(ctx context.Context) ([]*model.TeamMember, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return members, nil
}

func (s *TeamService) Create(ctx context.Context, in TeamMemberInput) (*model.TeamMember, error) {
	var fields []utils.FieldError
	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 128 {
		fields = append(fields, utils.FieldError{Field: "name", Message: "must be between 1 and 128 characters"})
	}
	role := strings.TrimSpace(in.Role)
	if n := utf8.RuneCountInString(role); n < 1 || n > 128 {
		fields = append(fields, utils.FieldError{Field: "role", Message: "must be between 1 and 128 characters"})
	}
	avatar, fe := trimmedOptional("avatarKey", in.AvatarKey, 256)
	fields = append(fields, fe...)
	if len(fields) > 0 {
		return nil, utils.Validation("invalid team member", fields...)
	}

	member := &model.TeamMember{Name: name, Role: role, AvatarKey: avatar}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, utils.Upstream(err)
	}
	return member, nil
}

// Delete removes a member and its avatar.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	member, err := s.members.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("team member not found")
	}
	if err != nil {
		return utils.Upstream(err)
	}
	if member.AvatarKey != nil {
		s.objects.DeleteQuietly(ctx, storage.BucketAvatars, *member.AvatarKey)
	}
	return nil
}
