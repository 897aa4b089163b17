package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointLimiter_NilNeverBlocks(t *testing.T) {
	var l *EndpointLimiter
	assert.NoError(t, l.Wait(context.Background(), EndpointOffers))
}

func TestEndpointLimiter_BurstThenBlocks(t *testing.T) {
	l := NewEndpointLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 2})
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, EndpointOffers))
	require.NoError(t, l.Wait(ctx, EndpointOffers))

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, EndpointOffers))

	// buckets are independent per endpoint
	assert.NoError(t, l.Wait(context.Background(), EndpointLocations))
}

func TestEndpointLimiter_ZeroRateIsUnlimited(t *testing.T) {
	l := NewEndpointLimiter(Config{RequestsPerSecond: 0, BurstSize: 0})
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Wait(context.Background(), EndpointToken))
	}
}

func TestEndpointLimiter_Override(t *testing.T) {
	l := NewEndpointLimiter(DefaultConfig())
	l.SetEndpointLimit(EndpointToken, 0.001, 1)

	require.NoError(t, l.Wait(context.Background(), EndpointToken))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, EndpointToken))
}
