package endorsement

import (
	"context"
	"errors"
	"strings"
	"testing"

	"talent-board/internal/domain/endorsement"
	"talent-board/internal/domain/profile"
	"talent-board/internal/domain/user"
	"talent-board/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockUserRepo struct {
	byWallet map[string]user.User
	byID     map[uuid.UUID]user.User
}

func (m mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}
func (m mockUserRepo) GetByWallet(_ context.Context, wallet string) (user.User, error) {
	if u, ok := m.byWallet[wallet]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}
func (m mockUserRepo) Touch(_ context.Context, wallet string) (user.User, error) {
	return m.GetByWallet(context.Background(), wallet)
}

type mockProfileRepo struct {
	byID     map[uuid.UUID]profile.Profile
	byUserID map[uuid.UUID]profile.Profile
}

func (m mockProfileRepo) Create(context.Context, profile.Profile) error { return nil }
func (m mockProfileRepo) Update(context.Context, profile.Profile) error { return nil }
func (m mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}
func (m mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	if p, ok := m.byUserID[userID]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}
func (m mockProfileRepo) ListSeekers(context.Context, repository.SeekerFilter) ([]repository.SeekerRow, error) {
	return nil, nil
}

type mockEndorsementRepo struct {
	exists    bool
	existsErr error
	createErr error
	deleteErr error
	getErr    error
	pair      endorsement.Endorsement
	listRows  []repository.EndorsementWithEndorser
	listErr   error

	created *[]endorsement.Endorsement
	deleted *[]uuid.UUID
}

func (m mockEndorsementRepo) GetByPair(context.Context, string, uuid.UUID) (endorsement.Endorsement, error) {
	if m.getErr != nil {
		return endorsement.Endorsement{}, m.getErr
	}
	return m.pair, nil
}
func (m mockEndorsementRepo) Exists(context.Context, string, uuid.UUID) (bool, error) {
	return m.exists, m.existsErr
}
func (m mockEndorsementRepo) CreateAndIncrement(_ context.Context, e endorsement.Endorsement) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.created != nil {
		*m.created = append(*m.created, e)
	}
	return nil
}
func (m mockEndorsementRepo) DeleteAndDecrement(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.deleted != nil {
		*m.deleted = append(*m.deleted, id)
	}
	return nil
}
func (m mockEndorsementRepo) ListByProfile(context.Context, uuid.UUID) ([]repository.EndorsementWithEndorser, error) {
	return m.listRows, m.listErr
}

const (
	endorserWallet = "0x" + "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	ownerWallet    = "0x" + "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

type fixture struct {
	endorser user.User
	owner    user.User
	target   profile.Profile

	users    mockUserRepo
	profiles mockProfileRepo
}

func newFixture() fixture {
	endorser := user.User{ID: uuid.New(), WalletAddress: endorserWallet, Role: user.RoleSeeker}
	owner := user.User{ID: uuid.New(), WalletAddress: ownerWallet, Role: user.RoleSeeker}
	endorserProfile := profile.Profile{ID: uuid.New(), UserID: endorser.ID, Name: "Endorser"}
	target := profile.Profile{ID: uuid.New(), UserID: owner.ID, Name: "Owner"}

	return fixture{
		endorser: endorser,
		owner:    owner,
		target:   target,
		users: mockUserRepo{
			byWallet: map[string]user.User{endorserWallet: endorser, ownerWallet: owner},
			byID:     map[uuid.UUID]user.User{endorser.ID: endorser, owner.ID: owner},
		},
		profiles: mockProfileRepo{
			byID: map[uuid.UUID]profile.Profile{
				endorserProfile.ID: endorserProfile,
				target.ID:          target,
			},
			byUserID: map[uuid.UUID]profile.Profile{
				endorser.ID: endorserProfile,
				owner.ID:    target,
			},
		},
	}
}

func validMessage() string { return strings.Repeat("x", 100) }

func TestEndorse_Success(t *testing.T) {
	f := newFixture()
	var created []endorsement.Endorsement
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{created: &created}, nil)

	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         validMessage(),
		RelationshipTag: "worked_together",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created endorsement, got %d", len(created))
	}
	if created[0].EndorserWallet != endorserWallet {
		t.Fatalf("unexpected endorser wallet %q", created[0].EndorserWallet)
	}
	if created[0].ProfileID != f.target.ID {
		t.Fatalf("unexpected profile id")
	}
}

func TestEndorse_RequiresOwnProfile(t *testing.T) {
	f := newFixture()

	// Wallet that never logged in.
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{}, nil)
	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: "0x" + strings.Repeat("c", 40),
		ProfileID:       f.target.ID,
		Message:         validMessage(),
		RelationshipTag: "worked_together",
	})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	// Logged-in user that never created a profile.
	delete(f.profiles.byUserID, f.endorser.ID)
	err = svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         validMessage(),
		RelationshipTag: "worked_together",
	})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestEndorse_MessageBoundary(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{}, nil)

	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         strings.Repeat("x", 99),
		RelationshipTag: "worked_together",
	})
	if !errors.Is(err, ErrMessageTooShort) {
		t.Fatalf("expected ErrMessageTooShort at 99, got %v", err)
	}

	// Surrounding whitespace does not count toward the minimum.
	err = svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         "  " + strings.Repeat("x", 99) + "  ",
		RelationshipTag: "worked_together",
	})
	if !errors.Is(err, ErrMessageTooShort) {
		t.Fatalf("expected ErrMessageTooShort for padded 99, got %v", err)
	}

	// Exactly 100 runes passes; multibyte runes count as one.
	err = svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         strings.Repeat("é", 100),
		RelationshipTag: "worked_together",
	})
	if err != nil {
		t.Fatalf("expected 100 runes to pass, got %v", err)
	}
}

func TestEndorse_ValidationOrder(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{}, nil)

	// Short message wins over the also-invalid relationship tag.
	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       uuid.New(),
		Message:         "too short",
		RelationshipTag: "best_friends_forever",
	})
	if !errors.Is(err, ErrMessageTooShort) {
		t.Fatalf("expected ErrMessageTooShort first, got %v", err)
	}

	// Relationship tag wins over the missing target.
	err = svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       uuid.New(),
		Message:         validMessage(),
		RelationshipTag: "best_friends_forever",
	})
	if !errors.Is(err, ErrMissingRelationship) {
		t.Fatalf("expected ErrMissingRelationship before target lookup, got %v", err)
	}
}

func TestEndorse_TargetNotFound(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{}, nil)

	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       uuid.New(),
		Message:         validMessage(),
		RelationshipTag: "hired_them",
	})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestEndorse_SelfCaseInsensitive(t *testing.T) {
	f := newFixture()
	endorserProfile := f.profiles.byUserID[f.endorser.ID]
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{}, nil)

	// Mixed-case rendition of the endorser's own wallet.
	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: "0x" + strings.ToUpper(endorserWallet[2:]),
		ProfileID:       endorserProfile.ID,
		Message:         validMessage(),
		RelationshipTag: "know_personally",
	})
	if !errors.Is(err, ErrSelfEndorsement) {
		t.Fatalf("expected ErrSelfEndorsement, got %v", err)
	}
}

func TestEndorse_Duplicate(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{exists: true}, nil)

	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         validMessage(),
		RelationshipTag: "mentored_them",
	})
	if !errors.Is(err, ErrDuplicateEndorsement) {
		t.Fatalf("expected ErrDuplicateEndorsement, got %v", err)
	}
}

func TestEndorse_DuplicateRace(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{
		createErr: &pgconn.PgError{Code: "23505"},
	}, nil)

	err := svc.Endorse(context.Background(), EndorseInput{
		EndorserAddress: endorserWallet,
		ProfileID:       f.target.ID,
		Message:         validMessage(),
		RelationshipTag: "community_member",
	})
	if !errors.Is(err, ErrDuplicateEndorsement) {
		t.Fatalf("expected ErrDuplicateEndorsement on unique violation, got %v", err)
	}
}

func TestRemove_Success(t *testing.T) {
	f := newFixture()
	e := endorsement.Endorsement{ID: uuid.New(), EndorserWallet: endorserWallet, ProfileID: f.target.ID}
	var deleted []uuid.UUID
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{pair: e, deleted: &deleted}, nil)

	if err := svc.Remove(context.Background(), endorserWallet, f.target.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != e.ID {
		t.Fatalf("expected endorsement %s deleted, got %v", e.ID, deleted)
	}
}

func TestRemove_NotFound(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{getErr: endorsement.ErrNotFound}, nil)

	if err := svc.Remove(context.Background(), endorserWallet, f.target.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHasEndorsed_FailsOpen(t *testing.T) {
	f := newFixture()

	svc := NewService(f.users, f.profiles, mockEndorsementRepo{exists: true}, nil)
	if !svc.HasEndorsed(context.Background(), endorserWallet, f.target.ID) {
		t.Fatalf("expected true")
	}

	svc = NewService(f.users, f.profiles, mockEndorsementRepo{existsErr: errors.New("db down")}, nil)
	if svc.HasEndorsed(context.Background(), endorserWallet, f.target.ID) {
		t.Fatalf("expected false on repository error")
	}
}

func TestListForProfile_AnonymousFallback(t *testing.T) {
	f := newFixture()
	rows := []repository.EndorsementWithEndorser{
		{
			Endorsement:  endorsement.Endorsement{ID: uuid.New(), ProfileID: f.target.ID},
			EndorserName: "Alice",
		},
		{
			Endorsement: endorsement.Endorsement{ID: uuid.New(), ProfileID: f.target.ID},
		},
	}
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{listRows: rows}, nil)

	out := svc.ListForProfile(context.Background(), f.target.ID)
	if len(out) != 2 {
		t.Fatalf("expected 2 endorsements, got %d", len(out))
	}
	if out[0].EndorserName != "Alice" {
		t.Fatalf("unexpected name %q", out[0].EndorserName)
	}
	if out[1].EndorserName != "Anonymous" {
		t.Fatalf("expected Anonymous fallback, got %q", out[1].EndorserName)
	}
}

func TestListForProfile_FailsOpenEmpty(t *testing.T) {
	f := newFixture()
	svc := NewService(f.users, f.profiles, mockEndorsementRepo{listErr: errors.New("db down")}, nil)

	out := svc.ListForProfile(context.Background(), f.target.ID)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}
