package service

import (
	"context"
	"errors"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
)

// FavoriteService manages a user's favorite titles.
type FavoriteService struct {
	titles    *repository.TitleRepository
	favorites *repository.FavoriteRepository
}

func NewFavoriteService(repos *repository.Repositories) *FavoriteService {
	return &FavoriteService{titles: repos.Title, favorites: repos.Favorite}
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, user *model.User) ([]model.FavoriteView, error) {
	favorites, err := s.favorites.ListByUser(ctx, user.ID, user.IsAdmin())
	if err != nil {
		return nil, utils.Upstream(err)
	}
	views := make([]model.FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		if f.Title == nil {
			continue
		}
		views = append(views, model.FavoriteView{
			ID:       f.Title.ID,
			Slug:     f.Title.Slug,
			Name:     f.Title.Name,
			CoverKey: f.Title.CoverKey,
		})
	}
	return views, nil
}

// IsFavorite reports whether the user favorited the title matching slug.
func (s *FavoriteService) IsFavorite(ctx context.Context, user *model.User, slug string) (bool, error) {
	title, err := s.title(ctx, user, slug)
	if err != nil {
		return false, err
	}
	ok, err := s.favorites.IsFavorited(ctx, user.ID, title.ID)
	if err != nil {
		return false, utils.Upstream(err)
	}
	return ok, nil
}

// Add favorites a title. Adding an existing favorite succeeds.
func (s *FavoriteService) Add(ctx context.Context, user *model.User, slug string) error {
	title, err := s.title(ctx, user, slug)
	if err != nil {
		return err
	}
	if err := s.favorites.Add(ctx, user.ID, title.ID); err != nil {
		return utils.Upstream(err)
	}
	return nil
}

// Remove drops a favorite.
func (s *FavoriteService) Remove(ctx context.Context, user *model.User, slug string) error {
	title, err := s.title(ctx, user, slug)
	if err != nil {
		return err
	}
	if err := s.favorites.Remove(ctx, user.ID, title.ID); err != nil {
		return utils.Upstream(err)
	}
	return nil
}

func (s *FavoriteService) title(ctx context.Context, user *model.User, slug string) (*model.Title, error) {
	title, err := s.titles.FindBySlug(ctx, slug, user.IsAdmin())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("title not found")
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return title, nil
}
