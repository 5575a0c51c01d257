package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/imgpress/pkg/controller/http"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/infra/archive"
	"github.com/m-mizutani/imgpress/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWorkflow(quarterCompressor(), archive.NewZip())

	server, err := controller.NewServer(ctx, uc, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)
	gt.V(t, w.Code).Equal(http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.V(t, status.Status).Equal("healthy")
	gt.V(t, status.Service).Equal("imgpress")
	gt.V(t, status.Version).NotEqual("")
}
