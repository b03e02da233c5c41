package report

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// MockWriter is a testify mock for report.Writer
type MockWriter struct {
	mock.Mock
}

// NewMockWriter creates a MockWriter that asserts its expectations on cleanup
func NewMockWriter(t *testing.T) *MockWriter {
	m := &MockWriter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWriter) Write(w io.Writer, transactions []*entity.Transaction) error {
	args := m.Called(w, transactions)
	return args.Error(0)
}

func (m *MockWriter) ContentType() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockWriter) Extension() string {
	args := m.Called()
	return args.String(0)
}

// MockArchive is a testify mock for report.Archive
type MockArchive struct {
	mock.Mock
}

// NewMockArchive creates a MockArchive that asserts its expectations on cleanup
func NewMockArchive(t *testing.T) *MockArchive {
	m := &MockArchive{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArchive) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, objectName, data, contentType)
	return args.String(0), args.Error(1)
}
