package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/printstock/internal/db"
	"github.com/Simplici0/printstock/internal/export"
	"github.com/Simplici0/printstock/internal/inventory"
	"github.com/Simplici0/printstock/internal/migrations"
	"github.com/Simplici0/printstock/internal/model"
	"github.com/Simplici0/printstock/internal/pricing"
	"github.com/Simplici0/printstock/internal/seed"
	"github.com/Simplici0/printstock/internal/store"
)

const (
	adminEmail    = "admin@printstock.local"
	adminPassword = "12345"
)

type testServer struct {
	handler  http.Handler
	cookie   *http.Cookie
	filament model.Filament
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	_, err = seed.Run(context.Background(), database, seed.Config{AdminEmail: adminEmail, AdminPassword: adminPassword})
	require.NoError(t, err)

	st := store.New(database)
	auth, err := newAuthService(st, "test-secret")
	require.NoError(t, err)

	filaments, err := st.ListFilaments(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, filaments, 1)

	ts := &testServer{
		handler:  (&server{auth: auth, inv: inventory.NewService(st)}).routes(),
		filament: filaments[0],
	}
	ts.cookie = ts.login(t, adminEmail, adminPassword)
	require.NotNil(t, ts.cookie)
	return ts
}

func (ts *testServer) do(t *testing.T, method, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/login", url.Values{"email": {email}, "password": {password}})
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// itemValues describes 100 g over 60 min on the seeded 120/kg filament with
// the seeded preset: unit cost 13.332, direct price 26.664.
func (ts *testServer) itemValues() url.Values {
	return url.Values{
		"name":                 {"Maceta"},
		"filament_id":          {strconv.FormatInt(ts.filament.ID, 10)},
		"weight_grams":         {"100"},
		"print_minutes":        {"60"},
		"printer_power_watts":  {"150"},
		"energy_cost_per_kwh":  {"0,80"},
		"failure_rate_percent": {"10"},
		"quantity":             {"1"},
		"markup":               {"2"},
		"mode":                 {"direct"},
	}
}

func (ts *testServer) createItem(t *testing.T) model.Item {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/items", ts.itemValues())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[model.Item](t, rr)
}

func TestHealthAndAuthGate(t *testing.T) {
	ts := newTestServer(t)

	anon := &testServer{handler: ts.handler}

	rr := anon.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = anon.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "authentication required", decode[errorBody](t, rr).Detail)

	assert.Nil(t, anon.login(t, adminEmail, "wrong"))
	rr = anon.do(t, http.MethodPost, "/login", url.Values{"email": {adminEmail}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestQuoteEndpoint(t *testing.T) {
	ts := newTestServer(t)

	values := ts.itemValues()
	values.Del("name")
	rr := ts.do(t, http.MethodPost, "/api/quote", values)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	res := decode[pricing.Result](t, rr)
	assert.Equal(t, 13.33, res.Breakdown.UnitCost)
	assert.Equal(t, 26.66, res.Price.ConsumerPrice)
	assert.Equal(t, 13.33, res.Price.NetProfit)
}

func TestItemLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodGet, "/api/items/new", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	defaults := decode[inventory.ItemInput](t, rr)
	assert.Equal(t, seed.DefaultPreset.Markup, defaults.Pricing.Markup)

	it := ts.createItem(t)
	assert.Equal(t, 26.66, it.ConsumerPrice)

	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[inventory.ItemDetail](t, rr)
	assert.Equal(t, 39.14, detail.ConfiguredMarketplace.ConsumerPrice)
	assert.Equal(t, 42.08, detail.WorstCaseEstimate.ConsumerPrice)

	rr = ts.do(t, http.MethodPut, "/api/items/"+it.ID+"/variations", url.Values{
		"variation_name":                 {"Seda"},
		"variation_filament_cost_per_kg": {"200"},
		"variation_weight_grams":         {"50"},
		"variation_print_minutes":        {"30"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[[]pricing.Variation](t, rr)
	require.Len(t, saved, 1)
	assert.Equal(t, 22.13, saved[0].CalculatedPrice)

	values := ts.itemValues()
	values.Set("markup", "3")
	rr = ts.do(t, http.MethodPost, "/api/items/"+it.ID, values)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	detail = decode[inventory.ItemDetail](t, rr)
	require.Len(t, detail.Variations, 1)
	assert.Equal(t, 33.2, detail.Variations[0].CalculatedPrice)

	rr = ts.do(t, http.MethodPost, "/api/items/"+it.ID+"/variations/preview", url.Values{
		"name":          {"Prueba"},
		"filament_id":   {strconv.FormatInt(ts.filament.ID, 10)},
		"weight_grams":  {"50"},
		"print_minutes": {"30"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	preview := decode[pricing.Variation](t, rr)
	// 6.666 at markup 3
	assert.Equal(t, 20.0, preview.CalculatedPrice)

	rr = ts.do(t, http.MethodDelete, "/api/items/"+it.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decode[errorBody](t, rr).Detail, "not found")
}

func TestCreateItemValidationError(t *testing.T) {
	ts := newTestServer(t)

	values := ts.itemValues()
	values.Set("name", " ")
	rr := ts.do(t, http.MethodPost, "/api/items", values)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decode[errorBody](t, rr)
	assert.Equal(t, "validation error", body.Detail)
	assert.Contains(t, body.Fields, "name")
}

func TestMatrixEndpoints(t *testing.T) {
	ts := newTestServer(t)
	it := ts.createItem(t)

	rr := ts.do(t, http.MethodGet, "/api/items/"+it.ID+"/matrix", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]pricing.Row](t, rr)
	require.Len(t, rows, 1)
	assert.InDelta(t, 13.332, rows[0].Breakdown.UnitCost, 1e-9)

	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID+"/matrix?weight_grams=0&print_minutes=0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID+"/matrix.xlsx?weight_grams=200&print_minutes=60", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypeXLSX, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	sheet := f.GetSheetList()[0]
	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, ts.filament.Name, name)

	rr = ts.do(t, http.MethodGet, "/api/items/missing/matrix", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFilamentCreatedWithoutActiveJoinsMatrix(t *testing.T) {
	ts := newTestServer(t)
	it := ts.createItem(t)

	rr := ts.do(t, http.MethodPost, "/api/filaments", url.Values{"name": {"PETG"}, "color": {"Negro"}, "cost_per_kg": {"80"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.True(t, decode[model.Filament](t, rr).Active)

	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID+"/matrix", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]pricing.Row](t, rr)
	require.Len(t, rows, 2)
	assert.Equal(t, "PETG", rows[1].Filament.Name)
	// 8 + 0.12 + 0.812
	assert.InDelta(t, 8.932, rows[1].Breakdown.UnitCost, 1e-9)
}

func TestOversizedNumbersStayFinite(t *testing.T) {
	ts := newTestServer(t)

	values := ts.itemValues()
	values.Set("weight_grams", "1e308")
	values.Set("printer_lifetime_hours", "1e308")
	rr := ts.do(t, http.MethodPost, "/api/quote", values)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[pricing.Result](t, rr)
	assert.False(t, math.IsInf(res.Breakdown.UnitCost, 0) || math.IsNaN(res.Breakdown.UnitCost))
	assert.Positive(t, res.Price.ConsumerPrice)

	it := ts.createItem(t)
	rr = ts.do(t, http.MethodGet, "/api/items/"+it.ID+"/matrix?weight_grams=1e308&print_minutes=60", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]pricing.Row](t, rr)
	require.Len(t, rows, 1)
	// capped at 1e9 g of the 120/kg filament
	assert.InDelta(t, 1.2e8, rows[0].Breakdown.Material, 1e-3)
}

func TestFilamentAndPresetEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodPost, "/api/filaments", url.Values{"name": {""}, "cost_per_kg": {"10"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "required", decode[errorBody](t, rr).Fields["name"])

	rr = ts.do(t, http.MethodPost, "/api/filaments", url.Values{"name": {"PETG"}, "color": {"Negro"}, "cost_per_kg": {"80"}, "active": {"1"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	petg := decode[model.Filament](t, rr)
	assert.Equal(t, 80.0, petg.CostPerKg)

	path := "/api/filaments/" + strconv.FormatInt(petg.ID, 10)
	rr = ts.do(t, http.MethodPost, path, url.Values{"name": {"PETG"}, "cost_per_kg": {"85,5"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[model.Filament](t, rr)
	assert.Equal(t, 85.5, updated.CostPerKg)
	assert.True(t, updated.Active, "omitted active keeps the current state")

	rr = ts.do(t, http.MethodPost, path, url.Values{"name": {"PETG"}, "cost_per_kg": {"85,5"}, "active": {"0"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.False(t, decode[model.Filament](t, rr).Active)

	rr = ts.do(t, http.MethodGet, "/api/filaments?active=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Filament](t, rr), 1)

	rr = ts.do(t, http.MethodGet, "/api/filaments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Filament](t, rr), 2)

	rr = ts.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = ts.do(t, http.MethodDelete, "/api/filaments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/preset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, seed.DefaultPreset, decode[model.Preset](t, rr))

	rr = ts.do(t, http.MethodPost, "/api/preset", url.Values{"failure_rate_percent": {"-1"}, "markup": {"2"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "gte", decode[errorBody](t, rr).Fields["failure_rate_percent"])

	rr = ts.do(t, http.MethodPost, "/api/preset", url.Values{"printer_power_watts": {"200"}, "markup": {"3"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	preset := decode[model.Preset](t, rr)
	assert.Equal(t, 200.0, preset.PrinterPowerWatts)
	assert.Equal(t, 3.0, preset.Markup)
}
