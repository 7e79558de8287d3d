//go:build integration

package e2e

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/config"
	"github.com/light-bringer/shopcat-service/internal/services"
	httptransport "github.com/light-bringer/shopcat-service/internal/transport/http"
	"github.com/light-bringer/shopcat-service/tests/testutil"
)

// env is a fully wired service on the emulator, served over HTTP.
type env struct {
	svc    *services.ServiceOptions
	server *httptest.Server
}

func setupTest(t *testing.T, mode string) *env {
	t.Helper()

	_, cleanup := testutil.SetupSpannerTest(t)
	t.Cleanup(cleanup)

	cfg := &config.Config{
		SpannerDB: testutil.GetTestSpannerDB(),
		Paging:    config.PagingConfig{PageSize: 2, Mode: mode},
	}
	svc, err := services.NewServiceOptions(context.Background(), cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	server := httptest.NewServer(httptransport.NewRouter(svc.HTTPHandler))
	t.Cleanup(server.Close)

	return &env{svc: svc, server: server}
}

// do sends body as JSON and decodes the response into out when out is not nil.
func (e *env) do(t *testing.T, method, path, userID string, body, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(httptransport.UserIDHeader, userID)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		var buf bytes.Buffer
		_, err := buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(buf.Bytes(), out), buf.String())
	}
	return resp.StatusCode
}
