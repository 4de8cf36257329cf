package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	toggles := []*domain.Toggle{
		domain.NewBoolean("a", true),
		domain.NewBoolean("b", false),
		domain.NewEstablished("c"),
	}
	m.ObserveLoad(toggles, 2*time.Millisecond, nil)
	m.ObserveLoad(nil, time.Millisecond, errors.New("boom"))

	// Two load results, two gauges and the histogram.
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetCounter() != nil:
				values[mf.GetName()+"/"+metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 3.0, values["switchboard_toggles"])
	assert.Equal(t, 2.0, values["switchboard_toggles_enabled"])
	assert.Equal(t, 1.0, values["switchboard_loads_total/success"])
	assert.Equal(t, 1.0, values["switchboard_loads_total/failure"])
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveLoad(nil, time.Second, nil)
	})
}
