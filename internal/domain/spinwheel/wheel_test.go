package spinwheel

import (
	"math/rand"
	"testing"

	"github.com/battlezone-labs/backend/config"
	"github.com/stretchr/testify/require"
)

func TestWheel_Spin(t *testing.T) {
	tests := []struct {
		draw float64
		want float64
	}{
		{draw: 0, want: 5},
		{draw: 0.34, want: 5},
		{draw: 0.35, want: 10},
		{draw: 0.59, want: 10},
		{draw: 0.6, want: 15},
		{draw: 0.74, want: 15},
		{draw: 0.8, want: 25},
		{draw: 0.9, want: 50},
		{draw: 0.96, want: 75},
		{draw: 0.995, want: 100},
	}

	for _, tt := range tests {
		w := New(DefaultPrizes, func() float64 { return tt.draw })
		require.Equal(t, tt.want, w.Spin().Credits, "draw=%v", tt.draw)
	}
}

func TestWheel_Spin_FallbackToFirstPrize(t *testing.T) {
	prizes := []Prize{
		{Credits: 5, Probability: 0.5},
		{Credits: 10, Probability: 0.3},
	}

	// The bands only cover [0, 0.8), draws beyond that pay the first prize.
	w := New(prizes, func() float64 { return 0.9 })
	require.Equal(t, float64(5), w.Spin().Credits)
}

func TestWheel_Distribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := New(DefaultPrizes, rng.Float64)

	const draws = 100000
	counts := map[float64]int{}
	for i := 0; i < draws; i++ {
		counts[w.Spin().Credits]++
	}

	for _, p := range DefaultPrizes {
		got := float64(counts[p.Credits]) / draws
		require.InDelta(t, p.Probability, got, 0.01, "credits=%v", p.Credits)
	}
}

func TestWheel_FromConfig(t *testing.T) {
	require.Equal(t, DefaultPrizes, FromConfig(nil).prizes)

	// The default configuration carries the production table.
	require.Equal(t, DefaultPrizes, FromConfig(config.Default().Reward.SpinPrizes).prizes)

	w := FromConfig([]config.SpinPrizeConfigs{{Credits: 42, Probability: 1}})
	require.Equal(t, float64(42), w.Spin().Credits)
}

func TestDefaultPrizes_SumToOne(t *testing.T) {
	sum := 0.0
	for _, p := range DefaultPrizes {
		sum += p.Probability
	}

	require.InDelta(t, 1.0, sum, 1e-9)
}
