package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-board/internal/domain/profile"
	"talent-board/internal/repository"

	"github.com/google/uuid"
)

type captureProfileRepo struct {
	rows    []repository.SeekerRow
	err     error
	filters *[]repository.SeekerFilter
}

func (m captureProfileRepo) Create(context.Context, profile.Profile) error { return nil }
func (m captureProfileRepo) Update(context.Context, profile.Profile) error { return nil }
func (m captureProfileRepo) GetByID(context.Context, uuid.UUID) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrNotFound
}
func (m captureProfileRepo) GetByUserID(context.Context, uuid.UUID) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrNotFound
}
func (m captureProfileRepo) ListSeekers(_ context.Context, f repository.SeekerFilter) ([]repository.SeekerRow, error) {
	if m.filters != nil {
		*m.filters = append(*m.filters, f)
	}
	return m.rows, m.err
}

func TestSearchSeekers_NormalizesSort(t *testing.T) {
	var filters []repository.SeekerFilter
	uc := NewSeekerQueryUsecase(captureProfileRepo{filters: &filters}, nil)

	uc.SearchSeekers(context.Background(), SeekerSearchParams{SortBy: "Endorsements"})
	uc.SearchSeekers(context.Background(), SeekerSearchParams{SortBy: "newest"})
	uc.SearchSeekers(context.Background(), SeekerSearchParams{})

	if filters[0].SortBy != repository.SeekerSortEndorsements {
		t.Fatalf("expected endorsements sort, got %q", filters[0].SortBy)
	}
	if filters[1].SortBy != repository.SeekerSortRecent {
		t.Fatalf("unknown sort must fall back to recent, got %q", filters[1].SortBy)
	}
	if filters[2].SortBy != repository.SeekerSortRecent {
		t.Fatalf("empty sort must default to recent, got %q", filters[2].SortBy)
	}
}

func TestSearchSeekers_TrimsSkills(t *testing.T) {
	var filters []repository.SeekerFilter
	uc := NewSeekerQueryUsecase(captureProfileRepo{filters: &filters}, nil)

	uc.SearchSeekers(context.Background(), SeekerSearchParams{
		Query:  "  alice  ",
		Skills: []string{" go ", "", "rust", "  "},
	})

	f := filters[0]
	if f.Query != "alice" {
		t.Fatalf("expected trimmed query, got %q", f.Query)
	}
	if len(f.Skills) != 2 || f.Skills[0] != "go" || f.Skills[1] != "rust" {
		t.Fatalf("expected trimmed skills [go rust], got %v", f.Skills)
	}
}

func TestSearchSeekers_FailsOpenEmpty(t *testing.T) {
	uc := NewSeekerQueryUsecase(captureProfileRepo{err: errors.New("db down")}, nil)

	rows := uc.SearchSeekers(context.Background(), SeekerSearchParams{})
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", rows)
	}
}
