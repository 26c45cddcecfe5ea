package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var spec struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	if spec.Info.Title != SwaggerInfo.Title {
		t.Fatalf("title = %q", spec.Info.Title)
	}
	for _, p := range []string{"/api/v1/alarm", "/api/v1/clock/state", "/api/v1/logs", "/auth/token", "/ws", "/health"} {
		if _, ok := spec.Paths[p]; !ok {
			t.Errorf("path %s missing", p)
		}
	}
}
