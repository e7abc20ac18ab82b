package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// sqlRecorder captures every statement GORM builds.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

func (r *sqlRecorder) all() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.statements, "\n")
}

// newDryRunDB builds statements without a database. Nothing is executed, so
// reads return no rows and writes affect none.
func newDryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}

func quoted(id uuid.UUID) string {
	return `"` + id.String() + `"`
}

func TestMessageRepositoryConversationQuery(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewMessageRepository(db)
	a, b := uuid.New(), uuid.New()

	msgs, err := repo.FindBetween(context.Background(), a, b)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	sql := rec.last(t)
	assert.Contains(t, sql, "FROM `messages`")
	assert.Contains(t, sql, "sender_id = "+quoted(a)+" AND receiver_id = "+quoted(b))
	assert.Contains(t, sql, "sender_id = "+quoted(b)+" AND receiver_id = "+quoted(a))
	assert.True(t, strings.HasSuffix(sql, "ORDER BY timestamp ASC"), sql)
}

func TestMessageRepositoryInvolvingQuery(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewMessageRepository(db)
	user := uuid.New()

	_, err := repo.FindInvolving(context.Background(), user)
	require.NoError(t, err)

	sql := rec.last(t)
	assert.Contains(t, sql, "sender_id = "+quoted(user)+" OR receiver_id = "+quoted(user))
	assert.True(t, strings.HasSuffix(sql, "ORDER BY timestamp DESC"), sql)
}

func TestMessageRepositoryCreateSkipsUsers(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewMessageRepository(db)

	msg := &models.Message{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		Content:    "hello",
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), msg))

	assert.Contains(t, rec.last(t), "INSERT INTO `messages`")
	assert.NotContains(t, rec.all(), "`users`")
}

func TestListingRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	db, rec := newDryRunDB(t)
	repo := NewListingRepository(db)
	owner := uuid.New()

	_, err := repo.FindAll(ctx)
	require.NoError(t, err)
	sql := rec.last(t)
	assert.Contains(t, sql, "FROM `listings`")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY created_at DESC"), sql)

	_, err = repo.FindByOwner(ctx, owner)
	require.NoError(t, err)
	sql = rec.last(t)
	assert.Contains(t, sql, "owner_id = "+quoted(owner))
	assert.True(t, strings.HasSuffix(sql, "ORDER BY created_at DESC"), sql)

	id := uuid.New()
	_, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, rec.last(t), "id = "+quoted(id))
}

func TestListingRepositoryCreateSkipsOwner(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewListingRepository(db)

	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	listing := &models.Listing{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Kind:          models.ListingKindStandard,
		Title:         "Room",
		PropertyType:  "Apartment",
		Location:      "Charlottesville, VA",
		RentPrice:     decimal.RequireFromString("850.00"),
		LeaseDuration: 12,
		AvailStart:    datatypes.Date(start),
		AvailEnd:      datatypes.Date(start.AddDate(1, 0, 0)),
		Owner:         models.User{ID: uuid.New(), Username: "owner"},
	}
	require.NoError(t, repo.Create(context.Background(), listing))

	assert.Contains(t, rec.last(t), "INSERT INTO `listings`")
	assert.NotContains(t, rec.all(), "`users`")
}

func TestSavedListingRepositoryScopesToUser(t *testing.T) {
	ctx := context.Background()
	db, rec := newDryRunDB(t)
	repo := NewSavedListingRepository(db)
	user, id := uuid.New(), uuid.New()

	// A dry run deletes nothing, which is the same as a foreign or missing row.
	err := repo.Delete(ctx, user, id)
	assert.ErrorIs(t, err, ErrNotFound)
	sql := rec.last(t)
	assert.Contains(t, sql, "DELETE FROM `saved_listings`")
	assert.Contains(t, sql, "id = "+quoted(id)+" AND user_id = "+quoted(user))

	_, err = repo.FindByUser(ctx, user)
	require.NoError(t, err)
	sql = rec.last(t)
	assert.Contains(t, sql, "user_id = "+quoted(user))
	assert.True(t, strings.HasSuffix(sql, "ORDER BY saved_at DESC"), sql)
}
