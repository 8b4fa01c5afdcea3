package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T, loginPerMinute int) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{APIRateLimit: 1000}

	issuer, err := auth.NewTokenIssuer("routes-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	users := repository.NewUserRepository(db)
	procurements := repository.NewProcurementRepository(db)
	contracts := repository.NewContractRepository(db)
	notifications := repository.NewNotificationRepository(db)

	authService, err := services.NewAuthService(users, auth.NewPasswordHasher(bcrypt.MinCost), issuer, 30*time.Minute)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	limiter, err := ratelimit.NewMemoryStore(loginPerMinute)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	app := fiber.New()
	Setup(app, cfg, issuer, limiter,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(db),
		handlers.NewProcurementHandler(procurements, contracts),
		handlers.NewContractHandler(contracts),
		handlers.NewNotificationHandler(notifications),
		handlers.NewReportHandler(services.NewReportService(db, notifications)),
	)
	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, map[string]interface{}, []byte) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) (int, map[string]interface{}, []byte) {
	s.t.Helper()
	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("app.Test %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var obj map[string]interface{}
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

func (s *testServer) login(username, password string) (int, map[string]interface{}) {
	s.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	code, obj, _ := s.send(req)
	return code, obj
}

func (s *testServer) token() string {
	s.t.Helper()
	code, _, raw := s.do(http.MethodPost, "/api/usuarios", "", map[string]string{
		"username": "admin", "email": "admin@example.com", "password": "admin123",
	})
	if code != http.StatusCreated {
		s.t.Fatalf("register: %d %s", code, raw)
	}
	code, obj := s.login("admin", "admin123")
	if code != http.StatusOK {
		s.t.Fatalf("login: %d %v", code, obj)
	}
	return obj["access_token"].(string)
}

func procurementBody(numero string) map[string]interface{} {
	return map[string]interface{}{
		"numero_processo":   numero,
		"modalidade":        "Pregão Eletrônico",
		"objeto":            "Aquisição de computadores",
		"orgao_responsavel": "Secretaria de Educação",
		"data_abertura":     "2024-03-01",
		"data_encerramento": "2024-04-01",
		"status":            "Aberta",
	}
}

func contractBody(numero string, procurementID float64) map[string]interface{} {
	return map[string]interface{}{
		"numero_contrato": numero,
		"licitacao_id":    procurementID,
		"fornecedor":      "Tech Supply LTDA",
		"objeto":          "Fornecimento de 50 computadores",
		"valor_total":     "250000.00",
		"data_assinatura": "2024-04-10",
		"data_inicio":     "2024-04-15",
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 10)
	code, obj, _ := s.do(http.MethodGet, "/api/health", "", nil)
	if code != http.StatusOK || obj["db"] != "ok" {
		t.Fatalf("health: %d %v", code, obj)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 10)
	for _, path := range []string{"/api/licitacoes", "/api/contratos", "/api/notificacoes", "/api/usuarios", "/api/usuarios/me", "/api/relatorios/resumo"} {
		code, obj, _ := s.do(http.MethodGet, path, "", nil)
		if code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", path, code)
		}
		if obj["error"] != true {
			t.Errorf("%s: body %v", path, obj)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.token()

	code, obj, _ := s.do(http.MethodGet, "/api/usuarios/me", token, nil)
	if code != http.StatusOK || obj["username"] != "admin" {
		t.Fatalf("me: %d %v", code, obj)
	}
	if _, ok := obj["password"]; ok {
		t.Fatal("password leaked in /me")
	}

	code, _, _ = s.do(http.MethodPost, "/api/usuarios", "", map[string]string{
		"username": "admin", "email": "other@example.com", "password": "x",
	})
	if code != http.StatusConflict {
		t.Fatalf("duplicate register: %d, want 409", code)
	}

	wrongCode, wrongBody := s.login("admin", "wrong")
	unknownCode, unknownBody := s.login("ghost", "wrong")
	if wrongCode != http.StatusUnauthorized || unknownCode != http.StatusUnauthorized {
		t.Fatalf("bad logins: %d / %d", wrongCode, unknownCode)
	}
	if wrongBody["message"] != unknownBody["message"] {
		t.Fatalf("login failures differ: %v vs %v", wrongBody, unknownBody)
	}

	code, obj, _ = s.do(http.MethodPost, "/api/usuarios/login", "", map[string]string{"username": "admin", "password": "admin123"})
	if code != http.StatusOK || obj["token_type"] != "bearer" {
		t.Fatalf("json login: %d %v", code, obj)
	}
}

func TestLoginThrottle(t *testing.T) {
	s := newTestServer(t, 2)
	var codes []int
	for i := 0; i < 3; i++ {
		code, _ := s.login("ghost", "x")
		codes = append(codes, code)
	}
	if codes[0] != http.StatusUnauthorized || codes[1] != http.StatusUnauthorized || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestProcurementAndContractLifecycle(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.token()

	code, proc, raw := s.do(http.MethodPost, "/api/licitacoes", token, procurementBody("PROC-2024-001"))
	if code != http.StatusCreated {
		t.Fatalf("create procurement: %d %s", code, raw)
	}
	procID := proc["id_licitacao"].(float64)
	if proc["data_abertura"] != "2024-03-01" {
		t.Fatalf("data_abertura = %v", proc["data_abertura"])
	}

	code, _, _ = s.do(http.MethodPost, "/api/licitacoes", token, procurementBody("PROC-2024-001"))
	if code != http.StatusConflict {
		t.Fatalf("duplicate procurement: %d, want 409", code)
	}

	code, _, raw = s.do(http.MethodPost, "/api/contratos", token, contractBody("CT-001", procID))
	if code != http.StatusCreated {
		t.Fatalf("create contract: %d %s", code, raw)
	}
	code, _, _ = s.do(http.MethodPost, "/api/contratos", token, contractBody("CT-002", 9999))
	if code != http.StatusNotFound {
		t.Fatalf("contract for missing procurement: %d, want 404", code)
	}

	for _, path := range []string{
		fmt.Sprintf("/api/licitacoes/%d/contratos", int(procID)),
		fmt.Sprintf("/api/contratos/licitacao/%d", int(procID)),
		fmt.Sprintf("/api/contratos?licitacao_id=%d", int(procID)),
	} {
		code, _, raw = s.do(http.MethodGet, path, token, nil)
		var items []map[string]interface{}
		if err := json.Unmarshal(raw, &items); err != nil || code != http.StatusOK || len(items) != 1 {
			t.Fatalf("%s: %d %s", path, code, raw)
		}
		if items[0]["status"] != "Ativo" {
			t.Fatalf("%s: default status = %v", path, items[0]["status"])
		}
	}

	code, _, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/licitacoes/%d", int(procID)), token, nil)
	if code != http.StatusConflict {
		t.Fatalf("delete procurement with contracts: %d, want 409", code)
	}

	code, obj, raw := s.do(http.MethodPatch, fmt.Sprintf("/api/licitacoes/%d", int(procID)), token, map[string]interface{}{
		"status":            "Encerrada",
		"data_encerramento": nil,
	})
	if code != http.StatusOK {
		t.Fatalf("patch procurement: %d %s", code, raw)
	}
	if obj["status"] != "Encerrada" || obj["data_encerramento"] != nil || obj["objeto"] != "Aquisição de computadores" {
		t.Fatalf("patched procurement: %v", obj)
	}

	code, _, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/licitacoes/%d", int(procID)), token, map[string]interface{}{"objeto": nil})
	if code != http.StatusBadRequest {
		t.Fatalf("null required field: %d, want 400", code)
	}

	code, _, _ = s.do(http.MethodGet, "/api/licitacoes/abc", token, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("bad id: %d, want 400", code)
	}
	code, _, _ = s.do(http.MethodGet, "/api/contratos/4242", token, nil)
	if code != http.StatusNotFound {
		t.Fatalf("missing contract: %d, want 404", code)
	}
}

func TestNotificationFlow(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.token()

	code, n, raw := s.do(http.MethodPost, "/api/notificacoes", token, map[string]interface{}{
		"titulo": "Prazo", "mensagem": "Licitação encerra amanhã", "tipo": "warning",
	})
	if code != http.StatusCreated || n["lida"] != false {
		t.Fatalf("create notification: %d %s", code, raw)
	}
	code, _, _ = s.do(http.MethodPost, "/api/notificacoes", token, map[string]interface{}{
		"titulo": "x", "mensagem": "y", "tipo": "urgent",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("bad tipo: %d, want 400", code)
	}

	code, obj, _ := s.do(http.MethodPatch, "/api/notificacoes/marcar-todas-lidas", token, nil)
	if code != http.StatusOK || obj["count"] != float64(1) {
		t.Fatalf("mark all read: %d %v", code, obj)
	}
	code, obj, _ = s.do(http.MethodPatch, "/api/notificacoes/marcar-todas-lidas", token, nil)
	if code != http.StatusOK || obj["count"] != float64(0) {
		t.Fatalf("second mark all read: %d %v", code, obj)
	}

	code, _, raw = s.do(http.MethodGet, "/api/notificacoes?apenas_nao_lidas=true", token, nil)
	if code != http.StatusOK || strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("unread list: %d %s", code, raw)
	}

	id := int(n["id"].(float64))
	code, obj, _ = s.do(http.MethodGet, fmt.Sprintf("/api/notificacoes/%d", id), token, nil)
	if code != http.StatusOK || obj["lida"] != true || obj["data_leitura"] == nil {
		t.Fatalf("get notification: %d %v", code, obj)
	}

	code, _, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/notificacoes/%d", id), token, nil)
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, _, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/notificacoes/%d/marcar-lida", id), token, nil)
	if code != http.StatusNotFound {
		t.Fatalf("mark deleted read: %d, want 404", code)
	}
}

func TestSummary(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.token()
	s.do(http.MethodPost, "/api/licitacoes", token, procurementBody("PROC-9"))

	code, obj, raw := s.do(http.MethodGet, "/api/relatorios/resumo", token, nil)
	if code != http.StatusOK {
		t.Fatalf("summary: %d %s", code, raw)
	}
	if obj["licitacoes"] != float64(1) || obj["usuarios"] != float64(1) {
		t.Fatalf("summary: %v", obj)
	}
}
