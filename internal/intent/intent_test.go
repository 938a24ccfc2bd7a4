package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

type stubResolver struct {
	result *Intent
	err    error
	calls  int
}

func (s *stubResolver) Resolve(context.Context, string, *catalog.Snapshot) (*Intent, error) {
	s.calls++
	return s.result, s.err
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{
		"find_talents", "find_opportunities", "show_talent_profile",
		"match_talent_to_opportunity", "match_opportunity_to_talents", "show_stats",
	} {
		action, err := ParseAction(valid)
		require.NoError(t, err)
		assert.Equal(t, Action(valid), action)
	}

	_, err := ParseAction("launch_rockets")
	assert.Error(t, err)
}

func TestFallbackResolverPrefersPrimary(t *testing.T) {
	primary := &stubResolver{result: &Intent{Action: ActionShowStats, Source: "ai"}}
	fallback := &stubResolver{result: &Intent{Action: ActionFindTalents, Source: "rules"}}

	result, err := NewFallbackResolver(primary, fallback, zap.NewNop()).
		Resolve(context.Background(), "stats please", fixtureSnapshot())
	require.NoError(t, err)

	assert.Equal(t, ActionShowStats, result.Action)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackResolverRecoversFromPrimaryFailure(t *testing.T) {
	primary := &stubResolver{err: errors.New("model overloaded")}
	fallback := &stubResolver{result: &Intent{Action: ActionFindOpportunities, Source: "rules"}}

	result, err := NewFallbackResolver(primary, fallback, zap.NewNop()).
		Resolve(context.Background(), "find work", fixtureSnapshot())
	require.NoError(t, err)

	assert.Equal(t, ActionFindOpportunities, result.Action)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackResolverDoesNotRetryUnrecognized(t *testing.T) {
	primary := &stubResolver{err: ErrUnrecognized}
	fallback := &stubResolver{result: &Intent{Action: ActionFindTalents}}

	_, err := NewFallbackResolver(primary, fallback, zap.NewNop()).
		Resolve(context.Background(), "gibberish", fixtureSnapshot())

	assert.ErrorIs(t, err, ErrUnrecognized)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackResolverSurfacesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &stubResolver{err: errors.New("request aborted")}
	fallback := &stubResolver{result: &Intent{Action: ActionFindTalents}}

	_, err := NewFallbackResolver(primary, fallback, zap.NewNop()).
		Resolve(ctx, "find work", fixtureSnapshot())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fallback.calls)
}
