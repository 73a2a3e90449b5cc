// Package spinwheel draws a daily prize from a weighted table.
package spinwheel

import (
	"github.com/battlezone-labs/backend/config"
	"github.com/battlezone-labs/backend/pkg/crypto"
)

type Prize struct {
	Credits     float64
	Probability float64
}

// DefaultPrizes is the production wheel. Probabilities sum to 1.
var DefaultPrizes = []Prize{
	{Credits: 5, Probability: 0.35},
	{Credits: 10, Probability: 0.25},
	{Credits: 15, Probability: 0.15},
	{Credits: 25, Probability: 0.12},
	{Credits: 50, Probability: 0.08},
	{Credits: 75, Probability: 0.04},
	{Credits: 100, Probability: 0.01},
}

type Wheel struct {
	prizes   []Prize
	randFunc func() float64
}

// New builds a wheel over prizes drawing randomness from randFunc, which
// must return values in [0, 1). Tests inject a deterministic randFunc.
func New(prizes []Prize, randFunc func() float64) *Wheel {
	return &Wheel{prizes: prizes, randFunc: randFunc}
}

func Default() *Wheel {
	return New(DefaultPrizes, crypto.RandFloat64)
}

// FromConfig builds the wheel from the configured prize table, falling back
// to DefaultPrizes when none is configured.
func FromConfig(prizes []config.SpinPrizeConfigs) *Wheel {
	if len(prizes) == 0 {
		return Default()
	}

	converted := make([]Prize, 0, len(prizes))
	for _, p := range prizes {
		converted = append(converted, Prize{Credits: p.Credits, Probability: p.Probability})
	}

	return New(converted, crypto.RandFloat64)
}

// Spin walks the cumulative probability bands and returns the prize whose
// band contains the drawn value. If the probabilities sum below 1 and the
// draw lands past the last band, the first prize is returned, so the wheel
// never fails to pay.
func (w *Wheel) Spin() Prize {
	draw := w.randFunc()

	cumulative := 0.0
	for _, p := range w.prizes {
		cumulative += p.Probability
		if draw < cumulative {
			return p
		}
	}

	return w.prizes[0]
}
