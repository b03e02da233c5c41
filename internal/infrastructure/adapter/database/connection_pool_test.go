package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
)

type fakeStats struct {
	stats sql.DBStats
}

func (f fakeStats) Stats() sql.DBStats { return f.stats }

func TestConnectionPoolMonitor_CollectsOnStart(t *testing.T) {
	mockLogger := mcore.NewMockLogger(t)
	source := fakeStats{stats: sql.DBStats{MaxOpenConnections: 10, OpenConnections: 3, InUse: 2, Idle: 1, WaitCount: 4}}

	monitor := NewConnectionPoolMonitor(source, mockLogger)
	assert.Equal(t, ConnectionPoolMetrics{}, monitor.GetMetrics())

	require.NoError(t, monitor.Start(time.Hour))
	defer monitor.Stop()

	metrics := monitor.GetMetrics()
	assert.Equal(t, 10, metrics.MaxOpenConnections)
	assert.Equal(t, 3, metrics.OpenConnections)
	assert.Equal(t, 2, metrics.InUse)
	assert.Equal(t, 1, metrics.IdleConnections)
	assert.Equal(t, int64(4), metrics.WaitCount)
}

func TestConnectionPoolMonitor_WarnsWhenNearlyExhausted(t *testing.T) {
	mockLogger := mcore.NewMockLogger(t)
	mockLogger.On("Warn", "Database connection pool nearly exhausted", mock.Anything).Once()
	source := fakeStats{stats: sql.DBStats{MaxOpenConnections: 10, InUse: 9}}

	monitor := NewConnectionPoolMonitor(source, mockLogger)
	require.NoError(t, monitor.Start(time.Hour))
	monitor.Stop()
	monitor.Stop()
}
