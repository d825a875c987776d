package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/dreamyvoice/internal/admin"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
	"golang.org/x/sync/errgroup"
)

// AdminService backs the admin dashboard and resource listings.
type AdminService struct {
	repos   *repository.Repositories
	objects ObjectCleaner
}

func NewAdminService(repos *repository.Repositories, objects ObjectCleaner) *AdminService {
	return &AdminService{repos: repos, objects: objects}
}

// Stats are the dashboard counters.
type Stats struct {
	Users           int64 `json:"users"`
	Titles          int64 `json:"titles"`
	PendingComments int64 `json:"pendingComments"`
}

// Stats loads the dashboard counters concurrently.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = s.repos.User.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Titles, err = s.repos.Title.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingComments, err = s.repos.Comment.CountByStatus(ctx, model.CommentPending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.Upstream(err)
	}
	return &stats, nil
}

// Records lists every row of the named admin resource.
func (s *AdminService) Records(ctx context.Context, name string) (interface{}, error) {
	resource, ok := admin.Lookup(name)
	if !ok || !resource.Allows(admin.OpList) {
		return nil, utils.NotFound("resource not found")
	}

	var (
		records interface{}
		err     error
	)
	switch resource.Name {
	case "users":
		var users []*model.User
		users, err = s.repos.User.ListAll(ctx)
		if err == nil {
			views := make([]model.PublicUser, 0, len(users))
			for _, u := range users {
				views = append(views, model.ToPublicUser(u))
			}
			records = views
		}
	case "titles":
		records, err = s.repos.Title.List(ctx, true)
	case "episodes":
		records, err = s.repos.Episode.ListAll(ctx)
	case "comments":
		records, err = s.repos.Comment.ListAll(ctx)
	case "sessions":
		records, err = s.repos.Session.ListAll(ctx)
	case "team-members":
		records, err = s.repos.TeamMember.List(ctx)
	default:
		return nil, fmt.Errorf("admin resource %q has no loader", resource.Name)
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return records, nil
}

// DeleteUser removes a user with its sessions and avatar.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repos.User.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("user not found")
	}
	if err != nil {
		return utils.Upstream(err)
	}
	if err := s.repos.User.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("user not found")
		}
		return utils.Upstream(err)
	}
	if user.AvatarKey != nil {
		s.objects.DeleteQuietly(ctx, storage.BucketAvatars, *user.AvatarKey)
	}
	return nil
}
