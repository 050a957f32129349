package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/amm/x/pair/types"
)

// PairMetrics holds all Prometheus metrics for the pair module
type PairMetrics struct {
	SwapsTotal       *prometheus.CounterVec
	Reserves         *prometheus.GaugeVec
	LPSupply         *prometheus.GaugeVec
	ProtocolFeeMints *prometheus.CounterVec
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// NewPairMetrics creates and registers pair metrics (singleton pattern)
func NewPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Swaps executed against a pair",
				},
				[]string{"pair", "status"},
			),
			Reserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "pair",
					Name:      "reserves",
					Help:      "Current pair reserves in base units",
				},
				[]string{"pair", "side"},
			),
			LPSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "pair",
					Name:      "lp_supply",
					Help:      "Outstanding LP token supply",
				},
				[]string{"pair"},
			),
			ProtocolFeeMints: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "pair",
					Name:      "protocol_fee_mints_total",
					Help:      "LP mints to the protocol fee recipient",
				},
				[]string{"pair"},
			),
		}
	})
	return pairMetrics
}

func (m *PairMetrics) observeReserves(p types.Pair) {
	m.Reserves.WithLabelValues(p.Address.String(), "0").Set(toFloat(p.Reserve0))
	m.Reserves.WithLabelValues(p.Address.String(), "1").Set(toFloat(p.Reserve1))
}

func (m *PairMetrics) recordSwap(pair sdk.AccAddress, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.SwapsTotal.WithLabelValues(pair.String(), status).Inc()
}

// toFloat converts an amount for gauges. Precision loss above 2^53 is fine here.
func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
