package analyses_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/config"
)

const handlerResume = `Jane Roe
jane.roe@example.com
Skills
Go, SQL, Docker, Communication
Experience
Acme Corp - Senior Engineer (2019 - Present)
- Cut deploy time by 40%
Education
B.S. Computer Science, State University`

func buildTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		ScoringVersion:  "rules:v1",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func uploadDocument(t *testing.T, router http.Handler, guestID string) string {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(handlerResume)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return created.DocumentID
}

func startAnalysis(t *testing.T, router http.Handler, guestID, documentID, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+documentID+"/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func getAnalysis(t *testing.T, router http.Handler, guestID, analysisID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysisID, nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeFlowCompletesWithReport(t *testing.T) {
	router := buildTestRouter(t)
	documentID := uploadDocument(t, router, "guest-a")

	resp := startAnalysis(t, router, "guest-a", documentID, `{"jobTitle":"Senior Software Engineer","seniority":"senior"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var started struct {
		AnalysisID string `json:"analysisId"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode start response: %v", err)
	}
	if started.AnalysisID == "" || started.Status != "queued" {
		t.Fatalf("unexpected start response: %+v", started)
	}

	var final struct {
		Status string         `json:"status"`
		Source string         `json:"source"`
		Error  string         `json:"error"`
		Result map[string]any `json:"result"`
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		getResp := getAnalysis(t, router, "guest-a", started.AnalysisID)
		if getResp.Code != http.StatusOK {
			t.Fatalf("get analysis: %d %s", getResp.Code, getResp.Body.String())
		}
		if err := json.NewDecoder(getResp.Body).Decode(&final); err != nil {
			t.Fatalf("decode analysis: %v", err)
		}
		if final.Status == "completed" {
			break
		}
		if final.Status == "failed" {
			t.Fatalf("analysis failed: %s", final.Error)
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out, status %s", final.Status)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if final.Source != "fallback" {
		t.Fatalf("expected fallback source, got %q", final.Source)
	}
	if _, ok := final.Result["overallScore"]; !ok {
		t.Fatalf("result missing overallScore: %v", final.Result)
	}
	if _, ok := final.Result["atsChecklist"]; !ok {
		t.Fatalf("result missing atsChecklist: %v", final.Result)
	}
}

func TestAnalyzeRequiresJobTitle(t *testing.T) {
	router := buildTestRouter(t)
	documentID := uploadDocument(t, router, "guest-b")

	resp := startAnalysis(t, router, "guest-b", documentID, `{"seniority":"mid"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAnalyzeUnknownDocumentReturns404(t *testing.T) {
	router := buildTestRouter(t)

	resp := startAnalysis(t, router, "guest-c", "missing-doc", `{"jobTitle":"Engineer"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetAnalysisHiddenFromOtherUsers(t *testing.T) {
	router := buildTestRouter(t)
	documentID := uploadDocument(t, router, "guest-d")

	resp := startAnalysis(t, router, "guest-d", documentID, `{"jobTitle":"Engineer"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}
	var started struct {
		AnalysisID string `json:"analysisId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode: %v", err)
	}

	other := getAnalysis(t, router, "guest-other", started.AnalysisID)
	if other.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user, got %d", other.Code)
	}
}

func TestListAnalysesRequiresLogin(t *testing.T) {
	router := buildTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("X-Guest-Id", "guest-e")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest list, got %d", resp.Code)
	}
}
