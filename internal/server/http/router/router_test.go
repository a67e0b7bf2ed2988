package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/media"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
)

func newEngine(t *testing.T, facade testhelpers.MarketplaceFacadeStub, files media.Storage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if files == nil {
		files = testhelpers.NewMediaStorageStub()
	}
	return Setup(facade, files, logger)
}

func serve(engine *gin.Engine, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

var bearer = map[string]string{"Authorization": "Bearer token"}

func TestSetupRoutes(t *testing.T) {
	owner := &model.User{ID: 10, Permissions: model.NewPermissionSet(model.PermissionStoreOwner)}
	facade := testhelpers.MarketplaceFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ResolveFn: func(context.Context, string) (*model.User, error) { return owner, nil },
		},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			ExportFn: func(context.Context, *model.User, *int64) (*model.Dataset, error) {
				return &model.Dataset{Name: "orders", Columns: model.OrderExportFields, Rows: [][]string{{"1", "TN-1", "1.00", "1.00"}}}, nil
			},
		},
	}
	engine := newEngine(t, facade, nil)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "pass"})
	resp := serve(engine, http.MethodPost, "/api/user/register", body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/marketing", "", http.StatusOK},
		{http.MethodGet, "/api/marketing/1", "", http.StatusOK},
		{http.MethodGet, "/api/orders", "", http.StatusOK},
		{http.MethodGet, "/api/orders/5", "", http.StatusOK},
		{http.MethodGet, "/api/orders/track/TN-5", "", http.StatusOK},
		{http.MethodPut, "/api/orders/5", `{"status":3}`, http.StatusOK},
		{http.MethodDelete, "/api/orders/5", "", http.StatusNoContent},
		{http.MethodGet, "/api/orders/export", "", http.StatusOK},
		{http.MethodGet, "/api/orders/export/2", "", http.StatusOK},
		{http.MethodGet, "/api/products/export", "", http.StatusOK},
		{http.MethodPut, "/api/user/dni", `{"dni":"X","dni_document_path":"p"}`, http.StatusNoContent},
		{http.MethodPost, "/api/marketing", `{"image":"data:image/png;base64,AAAA","area":"home"}`, http.StatusCreated},
		{http.MethodPut, "/api/marketing/1", `{"image":"data:image/png;base64,AAAA","area":"home"}`, http.StatusOK},
	}
	for _, tt := range tests {
		var reqBody []byte
		headers := map[string]string{"Authorization": "Bearer token"}
		if tt.body != "" {
			reqBody = []byte(tt.body)
			headers["Content-Type"] = "application/json"
		}
		resp := serve(engine, tt.method, tt.target, reqBody, headers)
		if resp.Code != tt.status {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.target, tt.status, resp.Code)
		}
	}
}

func TestSetupRequiresAuthentication(t *testing.T) {
	facade := testhelpers.MarketplaceFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			ResolveFn: func(context.Context, string) (*model.User, error) { return nil, pkgAuth.ErrInvalidToken },
		},
	}
	engine := newEngine(t, facade, nil)

	for _, target := range []string{"/api/orders", "/api/orders/export", "/api/products/export"} {
		if resp := serve(engine, http.MethodGet, target, nil, nil); resp.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: expected 401, got %d", target, resp.Code)
		}
		if resp := serve(engine, http.MethodGet, target, nil, bearer); resp.Code != http.StatusUnauthorized {
			t.Errorf("%s with invalid token: expected 401, got %d", target, resp.Code)
		}
	}
	if resp := serve(engine, http.MethodGet, "/api/marketing", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected public marketing listing, got %d", resp.Code)
	}
}

func TestSetupCompression(t *testing.T) {
	engine := newEngine(t, testhelpers.MarketplaceFacadeStub{}, nil)

	headers := map[string]string{"Authorization": "Bearer token", "Accept-Encoding": "gzip"}
	resp := serve(engine, http.MethodGet, "/api/marketing", nil, headers)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected compressed listing, got headers %v", resp.Header())
	}

	resp = serve(engine, http.MethodGet, "/api/products/export", nil, headers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected export, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Encoding") == "gzip" {
		t.Fatal("expected export stream to bypass compression")
	}
	if !strings.HasPrefix(resp.Body.String(), "name,price") {
		t.Fatalf("unexpected export body %q", resp.Body.String())
	}
}

func TestSetupDecompressesRequests(t *testing.T) {
	var gotLogin string
	facade := testhelpers.MarketplaceFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			AuthenticateFn: func(_ context.Context, login, _ string) (string, error) {
				gotLogin = login
				return "token", nil
			},
		},
	}
	engine := newEngine(t, facade, nil)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"login":"zipped","password":"pass"}`))
	_ = gz.Close()

	resp := serve(engine, http.MethodPost, "/api/user/login", buf.Bytes(), map[string]string{
		"Content-Type":     "application/json",
		"Content-Encoding": "gzip",
	})
	if resp.Code != http.StatusOK || gotLogin != "zipped" {
		t.Fatalf("expected decompressed login, got status %d login %q", resp.Code, gotLogin)
	}
}

func TestSetupServesPublicDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "public/banner.png", []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine := newEngine(t, testhelpers.MarketplaceFacadeStub{}, media.NewLocalStorage(fs, "public", "/storage"))

	resp := serve(engine, http.MethodGet, "/storage/banner.png", nil, nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "png" {
		t.Fatalf("expected stored file, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestSetupMetrics(t *testing.T) {
	engine := newEngine(t, testhelpers.MarketplaceFacadeStub{}, nil)
	serve(engine, http.MethodGet, "/api/health", nil, nil)

	resp := serve(engine, http.MethodGet, "/metrics", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "marketplace_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

var _ handlers.MarketplaceFacade = (*testhelpers.MarketplaceFacadeStub)(nil)
