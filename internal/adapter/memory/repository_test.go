package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/pollpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) (*PollRepository, *ResponseRepository, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	polls := NewPollRepository(clock)
	return polls, NewResponseRepository(clock, polls), clock
}

func TestPollRepository_CreateAssignsSequentialIDs(t *testing.T) {
	polls, _, clock := newRepos(t)
	ctx := context.Background()

	first, err := polls.Create(ctx, "Do you like X?")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := polls.Create(ctx, "Do you like Y?")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "Do you like X?", first.Question)
	assert.Equal(t, time.Minute, second.CreatedAt.Sub(first.CreatedAt))
}

func TestPollRepository_ListReturnsCopy(t *testing.T) {
	polls, _, _ := newRepos(t)
	ctx := context.Background()

	_, err := polls.Create(ctx, "Q1")
	require.NoError(t, err)

	list, err := polls.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].Question = "mutated"

	again, err := polls.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Q1", again[0].Question)
}

func TestPollRepository_ListEmpty(t *testing.T) {
	polls, _, _ := newRepos(t)

	list, err := polls.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPollRepository_Exists(t *testing.T) {
	polls, _, _ := newRepos(t)
	ctx := context.Background()

	poll, err := polls.Create(ctx, "Q")
	require.NoError(t, err)

	ok, err := polls.Exists(ctx, poll.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = polls.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResponseRepository_UnknownPoll(t *testing.T) {
	_, responses, _ := newRepos(t)

	_, err := responses.Create(context.Background(), domain.NewResponse{PollID: 999, Answer: "hi", Sentiment: domain.SentimentNeutral})
	require.ErrorIs(t, err, domain.ErrPollNotFound)

	list, err := responses.ListByPoll(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResponseRepository_ListByPollFiltersAndOrders(t *testing.T) {
	polls, responses, _ := newRepos(t)
	ctx := context.Background()

	a, err := polls.Create(ctx, "A")
	require.NoError(t, err)
	b, err := polls.Create(ctx, "B")
	require.NoError(t, err)

	for i, pollID := range []int64{a.ID, b.ID, a.ID, a.ID} {
		_, err := responses.Create(ctx, domain.NewResponse{PollID: pollID, Answer: fmt.Sprintf("answer %d", i), Sentiment: domain.SentimentNeutral})
		require.NoError(t, err)
	}

	list, err := responses.ListByPoll(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
	for _, r := range list {
		assert.Equal(t, a.ID, r.PollID)
	}
}

func TestResponseRepository_ConcurrentCreateUniqueIDs(t *testing.T) {
	polls, responses, _ := newRepos(t)
	ctx := context.Background()

	poll, err := polls.Create(ctx, "Q")
	require.NoError(t, err)

	const workers, perWorker = 16, 50
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Go(func() {
			for i := range perWorker {
				resp, err := responses.Create(ctx, domain.NewResponse{
					PollID:    poll.ID,
					Answer:    fmt.Sprintf("w%d-%d", w, i),
					Sentiment: domain.SentimentPositive,
				})
				if err != nil {
					t.Error(err)
					return
				}
				ids <- resp.ID
			}
		})
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)

	list, err := responses.ListByPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Len(t, list, workers*perWorker)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestPollRepository_ConcurrentCreateUniqueIDs(t *testing.T) {
	polls, _, _ := newRepos(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			_, err := polls.Create(ctx, "Q")
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	list, err := polls.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 32)
	for i, p := range list {
		assert.Equal(t, int64(i+1), p.ID)
	}
}
