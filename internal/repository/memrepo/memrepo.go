// Package memrepo holds in-memory implementations of the repository
// interfaces. They mirror the database constraints the services rely on
// (unique emails, one save/review per user and listing) and back the service
// and handler tests.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
)

// Store is a single in-memory database shared by all repositories created
// from it, so foreign-key style lookups (listing owner, saved listing) work.
type Store struct {
	mu       sync.RWMutex
	users    []models.User
	listings []models.Listing
	messages []models.Message
	saved    []models.SavedListing
	reviews  []models.PropertyReview
	profiles []models.RoommateProfile
	clock    func() time.Time
}

func NewStore() *Store {
	return &Store{clock: time.Now}
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

func (s *Store) Users() *UserRepo       { return &UserRepo{s} }
func (s *Store) Listings() *ListingRepo { return &ListingRepo{s} }
func (s *Store) Messages() *MessageRepo { return &MessageRepo{s} }
func (s *Store) Saved() *SavedRepo      { return &SavedRepo{s} }
func (s *Store) Reviews() *ReviewRepo   { return &ReviewRepo{s} }
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s} }

func (s *Store) ListingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

func (s *Store) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// --- users ---

type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	assignID(&user.ID)
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// --- listings ---

type ListingRepo struct{ s *Store }

var _ repository.ListingRepository = (*ListingRepo)(nil)

func (r *ListingRepo) Create(_ context.Context, listing *models.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&listing.ID)
	listing.CreatedAt = r.s.now()
	listing.UpdatedAt = listing.CreatedAt
	r.s.listings = append(r.s.listings, *listing)
	return nil
}

func (r *ListingRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.findListing(id)
}

func (s *Store) findListing(id uuid.UUID) (*models.Listing, error) {
	for _, l := range s.listings {
		if l.ID == id {
			l = s.withOwner(l)
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

// withOwner fills the Owner association the way Preload("Owner") does.
func (s *Store) withOwner(l models.Listing) models.Listing {
	for _, u := range s.users {
		if u.ID == l.OwnerID {
			l.Owner = u
			break
		}
	}
	return l
}

func (r *ListingRepo) FindAll(_ context.Context) ([]models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		out = append(out, r.s.withOwner(l))
	}
	return out, nil
}

func (r *ListingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Listing{}
	for _, l := range r.s.listings {
		if l.OwnerID == ownerID {
			out = append(out, r.s.withOwner(l))
		}
	}
	return out, nil
}

// --- messages ---

type MessageRepo struct{ s *Store }

var _ repository.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(_ context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&msg.ID)
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

// FindBetween returns matches in insertion order; callers sort.
func (r *MessageRepo) FindBetween(_ context.Context, a, b uuid.UUID) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Message{}
	for _, m := range r.s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MessageRepo) FindInvolving(_ context.Context, userID uuid.UUID) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Message{}
	for _, m := range r.s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// --- saved listings ---

type SavedRepo struct{ s *Store }

var _ repository.SavedListingRepository = (*SavedRepo)(nil)

func (r *SavedRepo) Create(_ context.Context, saved *models.SavedListing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sv := range r.s.saved {
		if sv.UserID == saved.UserID && sv.ListingID == saved.ListingID {
			return repository.ErrDuplicate
		}
	}
	assignID(&saved.ID)
	r.s.saved = append(r.s.saved, *saved)
	return nil
}

func (r *SavedRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]models.SavedListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.SavedListing{}
	for _, sv := range r.s.saved {
		if sv.UserID != userID {
			continue
		}
		if l, err := r.s.findListing(sv.ListingID); err == nil {
			sv.Listing = *l
		}
		out = append(out, sv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

func (r *SavedRepo) FindByUserAndListing(_ context.Context, userID, listingID uuid.UUID) (*models.SavedListing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sv := range r.s.saved {
		if sv.UserID == userID && sv.ListingID == listingID {
			sv := sv
			return &sv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SavedRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sv := range r.s.saved {
		if sv.ID == id && sv.UserID == userID {
			r.s.saved = append(r.s.saved[:i], r.s.saved[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- reviews ---

type ReviewRepo struct{ s *Store }

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) Create(_ context.Context, review *models.PropertyReview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.UserID == review.UserID && rv.ListingID == review.ListingID {
			return repository.ErrDuplicate
		}
	}
	assignID(&review.ID)
	review.CreatedAt = r.s.now()
	review.UpdatedAt = review.CreatedAt
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r *ReviewRepo) withUser(rv models.PropertyReview) models.PropertyReview {
	for _, u := range r.s.users {
		if u.ID == rv.UserID {
			rv.User = u
		}
	}
	return rv
}

func (r *ReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*models.PropertyReview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.ID == id {
			rv = r.withUser(rv)
			return &rv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ReviewRepo) FindByListing(_ context.Context, listingID uuid.UUID) ([]models.PropertyReview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.PropertyReview{}
	for _, rv := range r.s.reviews {
		if rv.ListingID == listingID {
			out = append(out, r.withUser(rv))
		}
	}
	return out, nil
}

func (r *ReviewRepo) ExistsByUserAndListing(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.UserID == userID && rv.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReviewRepo) Save(_ context.Context, review *models.PropertyReview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rv := range r.s.reviews {
		if rv.ID == review.ID {
			review.UpdatedAt = r.s.now()
			r.s.reviews[i] = *review
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *ReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rv := range r.s.reviews {
		if rv.ID == id {
			r.s.reviews = append(r.s.reviews[:i], r.s.reviews[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- roommate profiles ---

type ProfileRepo struct{ s *Store }

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

func (r *ProfileRepo) Create(_ context.Context, profile *models.RoommateProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.UserID == profile.UserID {
			return repository.ErrDuplicate
		}
	}
	assignID(&profile.ID)
	profile.CreatedAt = r.s.now()
	profile.UpdatedAt = profile.CreatedAt
	r.s.profiles = append(r.s.profiles, *profile)
	return nil
}

func (r *ProfileRepo) FindByUser(_ context.Context, userID uuid.UUID) (*models.RoommateProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepo) Save(_ context.Context, profile *models.RoommateProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.profiles {
		if p.ID == profile.ID {
			profile.UpdatedAt = r.s.now()
			r.s.profiles[i] = *profile
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *ProfileRepo) FindOthers(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.RoommateProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.RoommateProfile{}
	for i := len(r.s.profiles) - 1; i >= 0; i-- {
		p := r.s.profiles[i]
		if p.UserID == userID {
			continue
		}
		for _, u := range r.s.users {
			if u.ID == p.UserID {
				p.User = u
			}
		}
		out = append(out, p)
	}
	if offset >= len(out) {
		return []models.RoommateProfile{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
