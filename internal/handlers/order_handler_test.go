package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/models"
	middleware "github.com/booknest/booknest-server/pkg/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeOrderService struct {
	updateResult *views.UpdateResult
	updateErr    error
	updateCalls  int
	lastStatus   string
}

func (f *fakeOrderService) Create(context.Context, string, views.CreateOrderRequest) (*models.Order, error) {
	return &models.Order{}, nil
}

func (f *fakeOrderService) UpdateStatus(_ context.Context, _, _, requested string) (*views.UpdateResult, error) {
	f.updateCalls++
	f.lastStatus = requested
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeOrderService) ListByCustomer(context.Context, string, string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) ListByLibrarian(context.Context, string, string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) Delete(context.Context, string, string) (int64, error) {
	return 1, nil
}

func newOrderRouter(svc *fakeOrderService) *gin.Engine {
	r := gin.New()
	grp := r.Group("")
	grp.Use(middleware.TraceID())
	NewOrderHandler(zap.NewNop(), svc).RegisterRoutes(grp)
	return r
}

func patchJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestUpdateStatusEndpoint_Success(t *testing.T) {
	svc := &fakeOrderService{updateResult: &views.UpdateResult{MatchedCount: 1, ModifiedCount: 1}}
	r := newOrderRouter(svc)

	w := patchJSON(t, r, "/librian/update-status/6543a1b2c3d4e5f601234567", `{"status":"shipped"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "shipped", svc.lastStatus)
	assert.NotEmpty(t, w.Header().Get(pkg.HeaderTraceId))
}

func TestUpdateStatusEndpoint_TerminalViolationIs400(t *testing.T) {
	svc := &fakeOrderService{
		updateErr: pkg.NewAppError(pkg.ErrOrderTerminalCode, "order is delivered and can no longer change status", nil),
	}
	r := newOrderRouter(svc)

	w := patchJSON(t, r, "/librian/update-status/6543a1b2c3d4e5f601234567", `{"status":"pending"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, pkg.ErrOrderTerminalCode.Code, body["code"])
}

func TestUpdateStatusEndpoint_UnknownOrderIs404(t *testing.T) {
	svc := &fakeOrderService{
		updateErr: pkg.NewAppError(pkg.ErrRecordNotFoundCode, "no documents found", nil),
	}
	r := newOrderRouter(svc)

	w := patchJSON(t, r, "/librian/update-status/6543a1b2c3d4e5f601234567", `{"status":"shipped"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, pkg.ErrRecordNotFoundCode.Code, body["code"])
}

func TestUpdateStatusEndpoint_MissingStatusNeverReachesService(t *testing.T) {
	svc := &fakeOrderService{}
	r := newOrderRouter(svc)

	w := patchJSON(t, r, "/librian/update-status/6543a1b2c3d4e5f601234567", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.updateCalls)
}
