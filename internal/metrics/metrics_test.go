package metrics

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{common.ErrorNotFound, "not_found"},
		{common.NewFieldError("title", common.ErrorMissingField), "invalid"},
		{fmt.Errorf("create: %w", common.ErrorDuplicateEmail), "constraint"},
		{common.ErrorForbidden, "forbidden"},
		{fmt.Errorf("update user 1: %w", common.ErrorUnauthorized), "forbidden"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "%v", tt.err)
	}
}

func TestStore_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewStore(reg)
	require.NoError(t, err)

	s.Observe("event", "create", time.Now(), nil)
	s.Observe("event", "create", time.Now(), common.ErrorInvalidTimeRange)
	s.Observe("event", "create", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.ops.WithLabelValues("event", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ops.WithLabelValues("event", "create", "invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(s.latency))

	expected := `
# HELP gophcal_store_operations_total Store operations by entity, operation and outcome.
# TYPE gophcal_store_operations_total counter
gophcal_store_operations_total{entity="event",op="create",outcome="invalid"} 1
gophcal_store_operations_total{entity="event",op="create",outcome="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gophcal_store_operations_total"))
}

func TestNewStore_TwiceOnSameRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewStore(reg)
	require.NoError(t, err)
	second, err := NewStore(reg)
	require.NoError(t, err)

	second.Observe("user", "delete", time.Now(), nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.ops.WithLabelValues("user", "delete", "ok")))
}

func TestNop(t *testing.T) {
	var o Observer = Nop{}
	o.Observe("user", "get", time.Now(), nil)
}
