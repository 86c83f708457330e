package usecase

import (
	"context"
	"log"
	"strings"

	"talent-board/internal/repository"
)

type SeekerSearchParams struct {
	Query  string
	Skills []string
	SortBy string
}

type SeekerQueryUsecase struct {
	profiles repository.ProfileRepository
	logger   *log.Logger
}

func NewSeekerQueryUsecase(profiles repository.ProfileRepository, logger *log.Logger) *SeekerQueryUsecase {
	return &SeekerQueryUsecase{profiles: profiles, logger: logger}
}

// ListSeekers returns every seeker that has a profile, newest first.
// Query failures fail open to an empty list.
func (uc *SeekerQueryUsecase) ListSeekers(ctx context.Context) []repository.SeekerRow {
	return uc.SearchSeekers(ctx, SeekerSearchParams{})
}

// SearchSeekers filters by substring over name/bio and by skill overlap
// (a seeker matches when it has at least one requested skill); both
// filters are ANDed when both are present.
func (uc *SeekerQueryUsecase) SearchSeekers(ctx context.Context, params SeekerSearchParams) []repository.SeekerRow {
	sortBy := strings.ToLower(strings.TrimSpace(params.SortBy))
	if sortBy != repository.SeekerSortEndorsements {
		sortBy = repository.SeekerSortRecent
	}

	skills := make([]string, 0, len(params.Skills))
	for _, s := range params.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	rows, err := uc.profiles.ListSeekers(ctx, repository.SeekerFilter{
		Query:  strings.TrimSpace(params.Query),
		Skills: skills,
		SortBy: sortBy,
	})
	if err != nil {
		if uc.logger != nil {
			uc.logger.Printf("[Seekers] list failed err=%v", err)
		}
		return []repository.SeekerRow{}
	}
	return rows
}
