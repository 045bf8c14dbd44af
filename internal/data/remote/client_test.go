package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 0, zerolog.Nop())
}

func TestCreateWorkOrder(t *testing.T) {
	var gotAuth string
	var gotDraft maintenance.WorkOrder

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/work-orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDraft))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"wo-500","number":"WO-2026-0500"}`))
	}))

	identity, err := client.CreateWorkOrder(context.Background(), maintenance.WorkOrder{
		ID:    "wo-tmp-abc123",
		Title: "PM: Fan inspection",
	})
	require.NoError(t, err)

	assert.Equal(t, "wo-500", identity.ID)
	assert.Equal(t, "WO-2026-0500", identity.Number)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "wo-tmp-abc123", gotDraft.ID, "draft sent as-is; remote discards the temp id")
}

func TestCreateWorkOrder_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"missing companyId"}`))
	}))

	_, err := client.CreateWorkOrder(context.Background(), maintenance.WorkOrder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing companyId")
	assert.Contains(t, err.Error(), "422")
}

func TestCreateWorkOrder_MissingIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"wo-500"}`))
	}))

	_, err := client.CreateWorkOrder(context.Background(), maintenance.WorkOrder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id or number")
}

func TestSaveWorkOrderBundle(t *testing.T) {
	var gotBody map[string]json.RawMessage

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/work-orders/wo-500/bundle", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	err := client.SaveWorkOrderBundle(context.Background(),
		maintenance.WorkOrder{ID: "wo-500"},
		[]maintenance.Task{{ID: "wo-500-task-1", WorkOrderID: "wo-500"}},
	)
	require.NoError(t, err)

	// Parts must be present and empty; the endpoint requires the field.
	assert.JSONEq(t, `[]`, string(gotBody["parts"]))
}

func TestSaveWorkOrderBundle_RemoteReportsFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))

	err := client.SaveWorkOrderBundle(context.Background(), maintenance.WorkOrder{ID: "wo-1"}, nil)
	require.Error(t, err, "a false success flag is a failure even on HTTP 200")
	assert.Contains(t, err.Error(), "wo-1")
}

func TestFetchSnapshot(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/companies":
			_, _ = w.Write([]byte(`{"data":[{"id":"c1","code":"ACME","name":"Acme"}]}`))
		case "/api/assets":
			_, _ = w.Write([]byte(`{"data":[{"id":"as-1","assetTag":"TAG-100"}]}`))
		case "/api/maintenance-plans":
			_, _ = w.Write([]byte(`{"data":[{"id":"PMT-ACME-HVAC-FAN01"}]}`))
		case "/api/plan-steps":
			_, _ = w.Write([]byte(`{"data":[{"id":"s1","planId":"PMT-ACME-HVAC-FAN01","stepNumber":1}]}`))
		case "/api/work-orders":
			_, _ = w.Write([]byte(`{"data":[{"id":"wo-1","number":"WO-2026-0001"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	snap, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Companies, 1)
	assert.Len(t, snap.Assets, 1)
	assert.Len(t, snap.Plans, 1)
	assert.Len(t, snap.PlanSteps, 1)
	assert.Len(t, snap.WorkOrders, 1)
}

func TestFetchSnapshot_PropagatesError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/assets" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch assets")
}
