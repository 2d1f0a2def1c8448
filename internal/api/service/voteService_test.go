package service

import (
	"fmt"
	"testing"
	"time"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubLookup fakes one entity kind's existence and ownership checks.
type stubLookup struct {
	exists   bool
	owner    string
	hasOwner bool
}

func (s stubLookup) Exists(id int64) (bool, error) {
	return s.exists, nil
}

func (s stubLookup) OwnerID(id int64) (string, bool, error) {
	return s.owner, s.hasOwner, nil
}

// fakeVoteRepo is an in-memory vote ledger keyed the same way the unique
// index keys the table, so upsert semantics mirror the real store.
type fakeVoteRepo struct {
	votes map[string]*models.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[string]*models.Vote)}
}

func (f *fakeVoteRepo) key(kind models.EntityKind, entityID int64, userID string) string {
	return fmt.Sprintf("%s:%d:%s", kind, entityID, userID)
}

func (f *fakeVoteRepo) Upsert(vote *models.Vote) error {
	k := f.key(vote.EntityKind, vote.EntityID, vote.UserID)
	now := time.Now()
	if existing, ok := f.votes[k]; ok {
		existing.Direction = vote.Direction
		existing.UpdatedAt = now
		return nil
	}
	stored := *vote
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.votes[k] = &stored
	return nil
}

func (f *fakeVoteRepo) Delete(kind models.EntityKind, entityID int64, userID string) (bool, error) {
	k := f.key(kind, entityID, userID)
	_, ok := f.votes[k]
	delete(f.votes, k)
	return ok, nil
}

func (f *fakeVoteRepo) DeleteForEntity(kind models.EntityKind, entityID int64) error {
	for k, v := range f.votes {
		if v.EntityKind == kind && v.EntityID == entityID {
			delete(f.votes, k)
		}
	}
	return nil
}

func (f *fakeVoteRepo) GetByUserAndEntity(kind models.EntityKind, entityID int64, userID string) (*models.Vote, error) {
	if v, ok := f.votes[f.key(kind, entityID, userID)]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVoteRepo) CountByDirection(kind models.EntityKind, entityID int64) (int64, int64, error) {
	var up, down int64
	for _, v := range f.votes {
		if v.EntityKind != kind || v.EntityID != entityID {
			continue
		}
		if v.Direction == models.VoteUp {
			up++
		} else {
			down++
		}
	}
	return up, down, nil
}

func (f *fakeVoteRepo) CountsForKind(kind models.EntityKind) (map[int64]repository.EntityVoteCounts, error) {
	counts := make(map[int64]repository.EntityVoteCounts)
	for _, v := range f.votes {
		if v.EntityKind != kind {
			continue
		}
		c := counts[v.EntityID]
		c.EntityID = v.EntityID
		if v.Direction == models.VoteUp {
			c.Upvotes++
		} else {
			c.Downvotes++
		}
		counts[v.EntityID] = c
	}
	return counts, nil
}

func (f *fakeVoteRepo) CountRecentDownvotes(kind models.EntityKind, since time.Time) (map[int64]int64, error) {
	recent := make(map[int64]int64)
	for _, v := range f.votes {
		if v.EntityKind == kind && v.Direction == models.VoteDown && v.UpdatedAt.After(since) {
			recent[v.EntityID]++
		}
	}
	return recent, nil
}

func carRegistry(owner string) LookupRegistry {
	return LookupRegistry{
		models.EntityKindCar:  stubLookup{exists: true, owner: owner, hasOwner: true},
		models.EntityKindPart: stubLookup{exists: true},
	}
}

func TestCastVote_RecordsVote(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry("owner-1"), nil)

	resp, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", models.VoteUp)
	require.NoError(t, err)

	assert.Equal(t, models.VoteUp, resp.Direction)
	assert.Equal(t, int64(1), resp.Summary.Upvotes)
	assert.Equal(t, int64(0), resp.Summary.Downvotes)
	assert.Equal(t, int64(1), resp.Summary.Score)
}

func TestCastVote_RevoteOverwrites(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry("owner-1"), nil)

	_, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", models.VoteUp)
	require.NoError(t, err)

	resp, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", models.VoteDown)
	require.NoError(t, err)

	// One row only: the revote replaced the first vote.
	assert.Equal(t, models.VoteDown, resp.Direction)
	assert.Equal(t, int64(1), resp.Summary.Total)
	assert.Equal(t, int64(0), resp.Summary.Upvotes)
	assert.Equal(t, int64(1), resp.Summary.Downvotes)
	assert.Equal(t, int64(-1), resp.Summary.Score)
}

func TestCastVote_InvalidDirection(t *testing.T) {
	svc := NewVoteService(newFakeVoteRepo(), carRegistry("owner-1"), nil)

	_, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", "sideways")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestCastVote_MissingEntity(t *testing.T) {
	registry := LookupRegistry{
		models.EntityKindCar: stubLookup{exists: false},
	}
	svc := NewVoteService(newFakeVoteRepo(), registry, nil)

	_, err := svc.CastVote(models.EntityKindCar, 999, "voter-1", models.VoteUp)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCastVote_SelfVoteRejected(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry("voter-1"), nil)

	_, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", models.VoteUp)
	assert.ErrorIs(t, err, apperror.ErrSelfVote)
	assert.Empty(t, repo.votes)
}

func TestCastVote_OwnerlessKindAllowsAnyVoter(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry(""), nil)

	// Parts carry no owner, so nobody can self-vote on them.
	resp, err := svc.CastVote(models.EntityKindPart, 7, "anyone", models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Summary.Downvotes)
}

func TestRemoveVote_ReportsExistence(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry("owner-1"), nil)

	_, err := svc.CastVote(models.EntityKindCar, 42, "voter-1", models.VoteUp)
	require.NoError(t, err)

	existed, err := svc.RemoveVote(models.EntityKindCar, 42, "voter-1")
	require.NoError(t, err)
	assert.True(t, existed)

	// Removing again is not an error, it just reports absence.
	existed, err = svc.RemoveVote(models.EntityKindCar, 42, "voter-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestGetUserVote_NotFound(t *testing.T) {
	svc := NewVoteService(newFakeVoteRepo(), carRegistry("owner-1"), nil)

	_, err := svc.GetUserVote(models.EntityKindCar, 42, "voter-1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetSummary_Percentages(t *testing.T) {
	repo := newFakeVoteRepo()
	svc := NewVoteService(repo, carRegistry("owner-1"), nil)

	// 2 up, 1 down: 66.7% / 33.3%
	for i, dir := range []string{models.VoteUp, models.VoteUp, models.VoteDown} {
		_, err := svc.CastVote(models.EntityKindCar, 42, "voter-"+string(rune('a'+i)), dir)
		require.NoError(t, err)
	}

	summary, err := svc.GetSummary(models.EntityKindCar, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Total)
	assert.InDelta(t, 66.7, summary.UpvotePct, 0.001)
	assert.InDelta(t, 33.3, summary.DownvotePct, 0.001)
	assert.InDelta(t, 100.0, summary.UpvotePct+summary.DownvotePct, 0.11)
}

func TestGetSummary_NoVotes(t *testing.T) {
	svc := NewVoteService(newFakeVoteRepo(), carRegistry("owner-1"), nil)

	summary, err := svc.GetSummary(models.EntityKindCar, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Total)
	assert.Zero(t, summary.UpvotePct)
	assert.Zero(t, summary.DownvotePct)
}

func TestBuildSummary_RoundsToOneDecimal(t *testing.T) {
	// 1 of 3 = 33.333... rounds to 33.3; 2 of 3 to 66.7
	summary := buildSummary(2, 1)
	assert.Equal(t, 66.7, summary.UpvotePct)
	assert.Equal(t, 33.3, summary.DownvotePct)

	// 1 of 7 = 14.2857... rounds to 14.3
	summary = buildSummary(6, 1)
	assert.Equal(t, 85.7, summary.UpvotePct)
	assert.Equal(t, 14.3, summary.DownvotePct)
}
