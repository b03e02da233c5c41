package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(t *testing.T) *mcore.MockLogger {
	return mcore.NewMockLogger(t).AllowAll()
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		switch v := body.(type) {
		case string:
			payload = []byte(v)
		default:
			var err error
			payload, err = json.Marshal(v)
			require.NoError(t, err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func sampleTransaction() *entity.Transaction {
	ref := "123456789012"
	return &entity.Transaction{
		ID:           "b1946ac92492d2347c6235b4d2611184",
		Amount:       decimal.RequireFromString("40"),
		Direction:    entity.DirectionExpense,
		Category:     entity.CategoryFood,
		Merchant:     "SAINATHCANTEEN",
		Description:  "Sent Rs.40.00 from Kotak Bank AC X1234 to sainathcanteen@ybl on 05-03-25.UPI Ref 123456789012",
		OccurredAt:   1741152000000,
		ReferenceID:  &ref,
		AutoCaptured: true,
		Account:      entity.AccountMain,
	}
}


func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
