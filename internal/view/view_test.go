package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/client"
	expenseHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/expense"
	inventoryHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/inventory"
	patientHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/patient"
	"github.com/aniketdange3/dental-clinic-api/internal/middleware"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/memory"
	"github.com/aniketdange3/dental-clinic-api/internal/router"
	expenseService "github.com/aniketdange3/dental-clinic-api/internal/service/expense"
	inventoryService "github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
	patientService "github.com/aniketdange3/dental-clinic-api/internal/service/patient"
)

// newTestClient runs the full API against in-memory storage.
func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	outbox := memory.NewOutboxRepository()
	r, err := router.New(router.Config{CORS: middleware.DefaultCORSConfig()},
		patientHandler.NewHandler(patientService.NewService(memory.NewPatientRepository(), nil), outbox),
		inventoryHandler.NewHandler(inventoryService.NewService(memory.NewInventoryRepository()), outbox),
		expenseHandler.NewHandler(expenseService.NewService(memory.NewExpenseRepository()), outbox),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

// newFailingClient points at a server that 500s every request.
func newFailingClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Server error"}`))
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

type countingConfirmer struct {
	answer bool
	calls  int
}

func (c *countingConfirmer) Confirm(string) bool {
	c.calls++
	return c.answer
}
