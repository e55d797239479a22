package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l3montree-dev/partchain/integrationtestutil"
	"github.com/l3montree-dev/partchain/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestServer(t *testing.T) {
	t.Run("should report a healthy admin database", func(t *testing.T) {
		srv := NewServer(integrationtestutil.NewSQLiteRegistry(t), mocks.NewLeaderElector(t), mocks.NewLedgerExecutor(t))

		rec := httptest.NewRecorder()
		srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("should expose leadership and organizations", func(t *testing.T) {
		leader := mocks.NewLeaderElector(t)
		leader.On("IsLeader").Return(true)
		executor := mocks.NewLedgerExecutor(t)
		executor.On("Organizations").Return([]string{"Lion", "Tiger"})
		srv := NewServer(integrationtestutil.NewSQLiteRegistry(t), leader, executor)

		rec := httptest.NewRecorder()
		srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info", nil))

		var info infoResponse
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &info))
		assert.True(t, info.Leader)
		assert.Equal(t, []string{"Lion", "Tiger"}, info.Organizations)
	})

	t.Run("should turn a panicking handler into an internal server error", func(t *testing.T) {
		srv := NewServer(integrationtestutil.NewSQLiteRegistry(t), mocks.NewLeaderElector(t), mocks.NewLedgerExecutor(t))
		srv.Echo.GET("/panic", func(ctx echo.Context) error {
			panic("boom")
		})

		rec := httptest.NewRecorder()
		srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
