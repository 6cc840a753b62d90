package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type createPayload struct {
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count" binding:"omitempty,min=1"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst createPayload
	return Bind(c, &dst)
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	fields := bindBody(t, `{"count": 3}`)
	if fields == nil {
		t.Fatal("expected validation failure for missing name")
	}
	// Messages are keyed by the json tag, not the Go field name.
	if _, ok := fields["name"]; !ok {
		t.Fatalf("expected error keyed by json name, got %v", fields)
	}
	if _, ok := fields["Name"]; ok {
		t.Fatalf("Go field name leaked into errors: %v", fields)
	}
}

func TestBindCollapsesMalformedJSON(t *testing.T) {
	fields := bindBody(t, `{broken`)
	if fields == nil {
		t.Fatal("expected failure for malformed body")
	}
	if _, ok := fields["detail"]; !ok {
		t.Fatalf("expected a detail entry, got %v", fields)
	}
}

func TestBindPassesValidPayload(t *testing.T) {
	if fields := bindBody(t, `{"name": "Site Checks", "count": 2}`); fields != nil {
		t.Fatalf("expected success, got %v", fields)
	}
}
