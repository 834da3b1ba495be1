package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

func newTestSession(client *fakeClient, settle time.Duration) *Session {
	return NewSession(NewPersonSearch(client, 0, nil), settle)
}

func TestSessionSubmit(t *testing.T) {
	client := &fakeClient{
		hits: []types.SearchHit{{ID: "Q3044", Label: "Charlemagne"}},
		entities: map[string]types.RawEntity{
			"Q3044": {ID: "Q3044", Claims: instanceOf(types.ClassHuman)},
		},
	}
	s := newTestSession(client, 10*time.Millisecond)
	defer s.Close()

	hits, err := s.Submit(context.Background(), "Charlemagne")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Q3044", hits[0].ID)
}

func TestSessionNewerSubmissionSupersedes(t *testing.T) {
	client := &fakeClient{
		hits: []types.SearchHit{{ID: "Q517", Label: "Napoleon"}},
		entities: map[string]types.RawEntity{
			"Q517": {ID: "Q517", Claims: instanceOf(types.ClassHuman)},
		},
	}
	s := newTestSession(client, 100*time.Millisecond)
	defer s.Close()

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "napo")
		firstErr <- err
	}()

	// Submit again while the first query is still settling.
	time.Sleep(20 * time.Millisecond)
	hits, err := s.Submit(context.Background(), "napoleon")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	require.ErrorIs(t, <-firstErr, wikidata.ErrCancelled)

	// The superseded query never reached the network.
	assert.Equal(t, 1, client.searchCalls)
}

func TestSessionCallerContextCancels(t *testing.T) {
	s := newTestSession(&fakeClient{}, 100*time.Millisecond)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := s.Submit(ctx, "anything")
	require.ErrorIs(t, err, wikidata.ErrCancelled)
}

func TestSessionClose(t *testing.T) {
	s := newTestSession(&fakeClient{}, time.Second)

	pending := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "pending")
		pending <- err
	}()
	time.Sleep(20 * time.Millisecond)

	s.Close()
	require.ErrorIs(t, <-pending, wikidata.ErrCancelled)
}
