package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type metricRow struct {
	ID   uint
	Name string
}

func TestQueryMetricsPlugin_RecordsLatency(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Use(QueryMetricsPlugin{}))
	require.NoError(t, db.AutoMigrate(&metricRow{}))

	require.NoError(t, db.Create(&metricRow{Name: "a"}).Error)
	var rows []metricRow
	require.NoError(t, db.Find(&rows).Error)

	assert.Len(t, rows, 1)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DatabaseQueryLatency), 2)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: ServiceName, Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}

func TestStartSpan_EndSpanWithError(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.op")
	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() { EndSpan(span, errors.New("boom")) })
}
