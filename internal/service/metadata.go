package service

import (
	"context"
	"fmt"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
	"golang.org/x/sync/errgroup"
)

type MetadataService struct {
	metadata *repository.MetadataRepository
}

func NewMetadataService(metadata *repository.MetadataRepository) *MetadataService {
	return &MetadataService{metadata: metadata}
}

// Sync seeds the genre and tag dictionaries concurrently.
func (s *MetadataService) Sync(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.metadata.EnsureGenres(ctx, GenreKeywords); err != nil {
			return fmt.Errorf("sync genres: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.metadata.EnsureTags(ctx, TagKeywords); err != nil {
			return fmt.Errorf("sync tags: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *MetadataService) Genres(ctx context.Context) ([]string, error) {
	names, err := s.metadata.GenreNames(ctx)
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return names, nil
}

func (s *MetadataService) Tags(ctx context.Context) ([]string, error) {
	names, err := s.metadata.TagNames(ctx)
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return names, nil
}

func (s *MetadataService) AgeRatings() []string {
	return append([]string(nil), model.AgeRatings...)
}
