package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func withUser(user *model.User) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, user)
	}
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

var (
	customer = &model.User{ID: 30, Permissions: model.NewPermissionSet(model.PermissionCustomer)}
	ceo      = &model.User{ID: 100, Permissions: model.NewPermissionSet(model.PermissionCEO)}
)

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUser(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.UserContextKey, customer)
	if got := CurrentUser(c); got == nil || got.ID != 30 {
		t.Fatalf("expected customer, got %+v", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domainErrors.ErrValidationFailed, http.StatusUnprocessableEntity},
		{domainErrors.ErrProofRequired, http.StatusUnprocessableEntity},
		{domainErrors.FieldErrors{"dni": "DNI is required"}, http.StatusUnprocessableEntity},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrShopNotFound, http.StatusNotFound},
		{domainErrors.ErrNotAuthorized, http.StatusForbidden},
		{domainErrors.ErrShopNotApproved, http.StatusForbidden},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrStorage, http.StatusInternalServerError},
		{domainErrors.ErrExportFailed, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterSetsCookie(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "marketplace_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named marketplace_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerUpdateIdentityDocument(t *testing.T) {
	var gotID int64
	var gotDNI, gotPath string
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{UpdateDNIFn: func(_ context.Context, userID int64, dni, path string) error {
		gotID, gotDNI, gotPath = userID, dni, path
		return nil
	}})
	body, _ := json.Marshal(dto.IdentityDocumentRequest{DNI: "X123", DocumentPath: "dni/x.png"})
	resp := performRequest(t, http.MethodPut, "/user/dni", "/user/dni", handler.UpdateIdentityDocument, withUser(customer), body, jsonHeaders)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if gotID != 30 || gotDNI != "X123" || gotPath != "dni/x.png" {
		t.Fatalf("unexpected arguments: %d %q %q", gotID, gotDNI, gotPath)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{UpdateDNIFn: func(context.Context, int64, string, string) error {
		return domainErrors.FieldErrors{"dni": "DNI is required"}
	}})
	resp = performRequest(t, http.MethodPut, "/user/dni", "/user/dni", handler.UpdateIdentityDocument, withUser(customer), []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
	errBody := decodeError(t, resp)
	if errBody.Code != "ERROR.VALIDATION_FAILED" || errBody.Errors["dni"] != "DNI is required" {
		t.Fatalf("unexpected error body: %+v", errBody)
	}

	resp = performRequest(t, http.MethodPut, "/user/dni", "/user/dni", handler.UpdateIdentityDocument, nil, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for anonymous request, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/user/dni", "/user/dni", handler.UpdateIdentityDocument, withUser(customer), []byte("nope"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad json, got %d", resp.Code)
	}
}

func TestOrderHandlerList(t *testing.T) {
	var gotShop *int64
	var gotPage model.Page
	created := time.Unix(0, 0).UTC()
	shopID := int64(1)
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(_ context.Context, user *model.User, shop *int64, page model.Page) (*model.OrderPage, error) {
		gotShop, gotPage = shop, page
		page = page.Normalize(model.DefaultPageLimit)
		return &model.OrderPage{
			Items: []model.ParentOrder{{
				Order:    model.Order{ID: 500, TrackingNumber: "TN-500", CustomerID: user.ID, StatusID: 1, CreatedAt: created},
				Children: model.ChildOrders{{ID: 501, ShopID: &shopID, StatusID: 1}},
			}},
			Total: 21,
			Page:  page,
		}, nil
	}}

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?limit=10&page=2&shop_id=undefined", NewOrderHandler(facade).List, withUser(customer), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotShop != nil || gotPage.Limit != 10 || gotPage.Number != 2 {
		t.Fatalf("unexpected listing arguments: shop=%v page=%+v", gotShop, gotPage)
	}

	var body dto.OrderPageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 21 || body.LastPage != 3 || body.CurrentPage != 2 || body.PerPage != 10 {
		t.Fatalf("unexpected pagination: %+v", body)
	}
	if len(body.Data) != 1 || len(body.Data[0].Children) != 1 || body.Data[0].Children[0].ID != 501 {
		t.Fatalf("unexpected data: %+v", body.Data)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?shop_id=7", NewOrderHandler(facade).List, withUser(customer), nil, nil)
	if resp.Code != http.StatusOK || gotShop == nil || *gotShop != 7 {
		t.Fatalf("expected shop filter 7, got status %d shop %v", resp.Code, gotShop)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?shop_id=abc", NewOrderHandler(facade).List, withUser(customer), nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for malformed shop id, got %d", resp.Code)
	}
}

func TestOrderHandlerListFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "shop not approved", err: domainErrors.ErrShopNotApproved, status: http.StatusForbidden, code: "ERROR.SHOP_NOT_APPROVED"},
		{name: "shop not found", err: domainErrors.ErrShopNotFound, status: http.StatusNotFound, code: "ERROR.SHOP_NOT_FOUND"},
		{name: "not authorized", err: domainErrors.ErrNotAuthorized, status: http.StatusForbidden, code: "ERROR.NOT_AUTHORIZED"},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError, code: "ERROR.SOMETHING_WENT_WRONG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, *model.User, *int64, model.Page) (*model.OrderPage, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, withUser(customer), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if body := decodeError(t, resp); body.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestOrderHandlerShowAndTrack(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/12", handler.Show, withUser(customer), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var order dto.ParentOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil || order.ID != 12 || order.Children == nil {
		t.Fatalf("unexpected order %+v err=%v", order, err)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/zero", handler.Show, withUser(customer), nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for malformed id, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/track/:tracking_number", "/orders/track/TN-1", handler.Track, withUser(customer), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil || order.TrackingNumber != "TN-1" {
		t.Fatalf("unexpected tracked order %+v err=%v", order, err)
	}

	handler = NewOrderHandler(testhelpers.OrderFacadeStub{TrackFn: func(context.Context, *model.User, string) (*model.ParentOrder, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodGet, "/orders/track/:tracking_number", "/orders/track/missing", handler.Track, withUser(customer), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerChangeStatus(t *testing.T) {
	var gotStatus int64
	var gotProof *string
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{ChangeStatusFn: func(_ context.Context, _ *model.User, id, statusID int64, proof *string) (*model.ParentOrder, error) {
		gotStatus, gotProof = statusID, proof
		order := &model.ParentOrder{Order: model.Order{ID: id}, Children: model.ChildOrders{{ID: id + 1}}}
		order.ApplyStatus(statusID, proof)
		return order, nil
	}})

	resp := performRequest(t, http.MethodPut, "/orders/:id", "/orders/500", handler.ChangeStatus, withUser(ceo),
		[]byte(`{"status":2,"id_proof_voucher_media":"media-1"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotStatus != 2 || gotProof == nil || *gotProof != "media-1" {
		t.Fatalf("unexpected arguments: %d %v", gotStatus, gotProof)
	}
	var order dto.ParentOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Status != 2 || order.Children[0].Status != 2 {
		t.Fatalf("expected cascaded status, got %+v", order)
	}

	resp = performRequest(t, http.MethodPut, "/orders/:id", "/orders/500", handler.ChangeStatus, withUser(ceo), []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 without status, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/orders/:id", "/orders/500", handler.ChangeStatus, withUser(ceo), []byte(`nope`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad json, got %d", resp.Code)
	}

	handler = NewOrderHandler(testhelpers.OrderFacadeStub{ChangeStatusFn: func(context.Context, *model.User, int64, int64, *string) (*model.ParentOrder, error) {
		return nil, domainErrors.ErrProofRequired
	}})
	resp = performRequest(t, http.MethodPut, "/orders/:id", "/orders/500", handler.ChangeStatus, withUser(ceo), []byte(`{"status":2}`), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for missing proof, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Code != "ERROR.PROOF_OF_PAYMENT_REQUIRED" {
		t.Fatalf("unexpected code %s", body.Code)
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	var deleted int64
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{DeleteFn: func(_ context.Context, _ *model.User, id int64) error {
		deleted = id
		return nil
	}})
	resp := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/9", handler.Delete, withUser(ceo), nil, nil)
	if resp.Code != http.StatusNoContent || deleted != 9 {
		t.Fatalf("expected 204 and deletion of 9, got %d and %d", resp.Code, deleted)
	}

	handler = NewOrderHandler(testhelpers.OrderFacadeStub{DeleteFn: func(context.Context, *model.User, int64) error {
		return domainErrors.ErrNotAuthorized
	}})
	resp = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/9", handler.Delete, withUser(customer), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestMarketingHandler(t *testing.T) {
	handler := NewMarketingHandler(testhelpers.MarketingFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/marketing", "/marketing", handler.List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list []dto.MarketingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil || len(list) != 1 || list[0].Area != "home" {
		t.Fatalf("unexpected list %+v err=%v", list, err)
	}

	resp = performRequest(t, http.MethodGet, "/marketing/:id", "/marketing/4", handler.Show, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var gotUpload model.MarketingUpload
	handler = NewMarketingHandler(testhelpers.MarketingFacadeStub{CreateFn: func(_ context.Context, user *model.User, upload model.MarketingUpload) (*model.MarketingAsset, error) {
		if user != ceo {
			t.Fatalf("expected current user to be forwarded")
		}
		gotUpload = upload
		return &model.MarketingAsset{ID: 3, URL: "/storage/x.png", Area: upload.Area, Text: upload.Text}, nil
	}})
	resp = performRequest(t, http.MethodPost, "/marketing", "/marketing", handler.Create, withUser(ceo),
		[]byte(`{"image":"data:image/png;base64,AAAA","area":"home-top","text":"Sale"}`), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotUpload.Image != "data:image/png;base64,AAAA" || gotUpload.Area != "home-top" || gotUpload.Text == nil || gotUpload.TextPosition != nil {
		t.Fatalf("unexpected upload: %+v", gotUpload)
	}

	handler = NewMarketingHandler(testhelpers.MarketingFacadeStub{
		GetFn: func(context.Context, int64) (*model.MarketingAsset, error) { return nil, domainErrors.ErrNotFound },
		UpdateFn: func(context.Context, *model.User, int64, model.MarketingUpload) (*model.MarketingAsset, error) {
			return nil, domainErrors.ErrStorage
		},
		CreateFn: func(context.Context, *model.User, model.MarketingUpload) (*model.MarketingAsset, error) {
			return nil, domainErrors.ErrNotAuthorized
		},
	})
	resp = performRequest(t, http.MethodGet, "/marketing/:id", "/marketing/4", handler.Show, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPut, "/marketing/:id", "/marketing/4", handler.Update, withUser(ceo), []byte(`{"image":"x"}`), jsonHeaders)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 for storage failure, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Code != "ERROR.STORAGE" || body.Message != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("unexpected error body %+v", body)
	}
	resp = performRequest(t, http.MethodPost, "/marketing", "/marketing", handler.Create, withUser(customer), []byte(`{"image":"x"}`), jsonHeaders)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(testhelpers.HealthFacadeStub{Err: errors.New("down")}).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
