package metrics_test

import (
	"strings"
	"testing"

	"github.com/delaneyj/tether/bind"
	"github.com/delaneyj/tether/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	rs := bind.CreateReactiveSystem(map[string]any{
		"user": map[string]any{"name": "A"},
		"n":    0,
	}, bind.WithHooks(c.Hooks()), bind.WithMaxNotifyDepth(2))

	for i := 0; i < 2; i++ {
		_, _, err := bind.Watch(rs, "user.name", func(any) error { return nil })
		require.NoError(t, err)
	}
	_, _, err = bind.Watch(rs, "n", func(v any) error {
		return rs.Assign("n", v.(int)+1)
	})
	require.NoError(t, err)

	require.NoError(t, rs.Assign("user.name", "B"))
	require.NoError(t, rs.Assign("user.name", "C"))
	assert.ErrorIs(t, rs.Assign("n", 1), bind.ErrNotifyDepthExceeded)

	count, err := testutil.GatherAndCount(reg, "tether_notify_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	hooks := c.Hooks()
	hooks.OnNotify("name", 2)
	hooks.OnNotify("name", 2)
	hooks.OnUpdate(bind.Path{"user", "name"}, "B")
	hooks.OnDepthExceeded("n", 2)

	count, err := testutil.GatherAndCount(reg,
		"tether_notify_total",
		"tether_update_total",
		"tether_notify_depth_exceeded_total",
		"tether_notify_fanout",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	expected := `
# HELP tether_notify_depth_exceeded_total Writes whose notification was suppressed by the depth bound
# TYPE tether_notify_depth_exceeded_total counter
tether_notify_depth_exceeded_total 1
# HELP tether_notify_total Notifications fired per property key
# TYPE tether_notify_total counter
tether_notify_total{key="name"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"tether_notify_total",
		"tether_notify_depth_exceeded_total",
	))
}

func TestCollectorDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	_, err = metrics.NewCollector(reg)
	assert.Error(t, err)
}
