package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/materials-api/pkg/jwt"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000003"

func tokenFor(t *testing.T, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// doJSON lanza una petición con body JSON y el token indicado.
func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func createBody() map[string]any {
	return map[string]any{
		"sku":           "TELA-001",
		"name":          "Tela de algodón",
		"category":      "fabric",
		"unit":          "m",
		"initial_stock": "20",
		"minimum_stock": "10",
		"unit_cost":     "2.50",
	}
}

// createMaterial crea un material y devuelve su id.
func createMaterial(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/materials", token, createBody())
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Materiales: create / get / update / delete
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterials_SinToken_Retorna401(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	resp := doJSON(t, app, http.MethodPost, "/api/materials", "", createBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMaterials_Create(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)

	resp := doJSON(t, app, http.MethodPost, "/api/materials", token, createBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "TELA-001", body["sku"])
	assert.Equal(t, "in-stock", body["status"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

func TestMaterials_Create_ValidacionConDetalles(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)

	in := createBody()
	in["name"] = ""
	in["unit_cost"] = "-1"

	resp := doJSON(t, app, http.MethodPost, "/api/materials", token, in)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])

	details, ok := body["details"].([]any)
	require.True(t, ok, "la respuesta debe incluir la lista de violaciones")
	assert.Len(t, details, 2, "todas las violaciones a la vez, no solo la primera")
}

func TestMaterials_Create_SKUDuplicado_Retorna409(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/materials", token, createBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "DUPLICATE", body["code"])
}

func TestMaterials_Get_Inexistente_Retorna404(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)

	resp := doJSON(t, app, http.MethodGet, "/api/materials/no-existe", token, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cross-tenant: un id real de otra empresa responde 404, nunca 403.
func TestMaterials_Get_OtraEmpresa_Retorna404(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	id := createMaterial(t, app, tokenFor(t, testCompanyID))

	resp := doJSON(t, app, http.MethodGet, "/api/materials/"+id, tokenFor(t, otherCompanyID), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMaterials_Update_NoPuedeRevertirDescontinuacion(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPut, "/api/materials/"+id, token, map[string]any{"discontinued": true})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/materials/"+id, token, map[string]any{"discontinued": false})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestMaterials_Delete(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodDelete, "/api/materials/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "material eliminado", decodeBody(t, resp)["message"])
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/materials/"+id, token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger: use / restock
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Use_DescuentaYRegistra(t *testing.T) {
	store := newMemRepos()
	app := buildAPIApp(store)
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/materials/use", token, map[string]any{
		"material_id": id,
		"quantity":    "15",
		"project":     "A",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	material, _ := body["material"].(map[string]any)
	require.NotNil(t, material)
	assert.Equal(t, "5", material["current_stock"])
	assert.Equal(t, "low-stock", material["status"])
	require.Len(t, store.usages, 1)
	assert.Equal(t, testUserID, store.usages[0].UsedBy)
}

func TestLedger_Use_StockInsuficiente_Retorna400(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token) // stock 20

	resp := doJSON(t, app, http.MethodPost, "/api/materials/use", token, map[string]any{
		"material_id": id,
		"quantity":    "21",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Contains(t, body["message"], "disponible 20")

	// El stock queda intacto.
	resp = doJSON(t, app, http.MethodGet, "/api/materials/"+id, token, nil)
	defer resp.Body.Close()
	assert.Equal(t, "20", decodeBody(t, resp)["current_stock"])
}

func TestLedger_Use_CantidadInvalida_Retorna400(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/materials/use", token, map[string]any{
		"material_id": id,
		"quantity":    "0",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decodeBody(t, resp)["code"])
}

func TestLedger_Restock_SumaYActualizaCosto(t *testing.T) {
	store := newMemRepos()
	app := buildAPIApp(store)
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/materials/restock", token, map[string]any{
		"material_id": id,
		"quantity":    "15",
		"unit_cost":   "3.00",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	material, _ := body["material"].(map[string]any)
	require.NotNil(t, material)
	assert.Equal(t, "35", material["current_stock"])
	assert.Equal(t, "3", material["unit_cost"])
	require.Len(t, store.restocks, 1)
	assert.True(t, store.restocks[0].TotalCost.Equal(store.restocks[0].UnitCost.Mul(store.restocks[0].Quantity)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bulk
// ──────────────────────────────────────────────────────────────────────────────

func TestBulk_BestEffort(t *testing.T) {
	app := buildAPIApp(newMemRepos())
	token := tokenFor(t, testCompanyID)
	id := createMaterial(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/materials/bulk", token, map[string]any{
		"material_ids": []string{id, "no-existe"},
		"action":       "delete",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	succeeded, _ := body["succeeded"].([]any)
	failed, _ := body["failed"].([]any)
	assert.Len(t, succeeded, 1)
	assert.Len(t, failed, 1)
}
