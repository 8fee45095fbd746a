package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func fixedClock(l *Limiter, at time.Time) {
	l.now = func() time.Time { return at }
}

func TestAllowWithinAndOverLimit(t *testing.T) {
	counter := new(mockCounter)
	l := New(counter, 2, time.Minute)
	fixedClock(l, time.Unix(120, 0).Add(15*time.Second))

	key := "trivia:ratelimit:10.0.0.1:120"
	counter.On("Incr", mock.Anything, key, time.Minute).Return(int64(1), nil).Once()
	counter.On("Incr", mock.Anything, key, time.Minute).Return(int64(2), nil).Once()
	counter.On("Incr", mock.Anything, key, time.Minute).Return(int64(3), nil).Once()

	d, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, 45*time.Second, d.ResetIn)

	d, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	counter.AssertExpectations(t)
}

func TestAllowFailsOpen(t *testing.T) {
	counter := new(mockCounter)
	counter.On("Incr", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("dial tcp: refused"))
	l := New(counter, 1, time.Minute)

	d, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.True(t, d.Allowed)
}

func TestDisabledLimiterSkipsCounter(t *testing.T) {
	counter := new(mockCounter)
	l := New(counter, 0, time.Minute)

	d, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	counter.AssertNotCalled(t, "Incr", mock.Anything, mock.Anything, mock.Anything)
}
