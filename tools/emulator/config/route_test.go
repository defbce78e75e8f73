package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raywall/fast-action-client/pkg/action"
	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/signature"
	"github.com/raywall/fast-action-client/tools/emulator/types"
)

var testCreds = action.Credentials{AccessKeyID: "testid", AccessKeySecret: "testsecret"}

func testServer() *ServerConfig {
	return &ServerConfig{
		AccessKeyID:     "testid",
		AccessKeySecret: "testsecret",
		Version:         "2014-05-26",
		Actions: []ActionConfig{
			{
				Action:   "DescribeRegions",
				Response: &types.Response{Status: 200, Body: map[string]interface{}{"Regions": []interface{}{"cn-hangzhou"}}},
			},
			{
				Action:   "DescribeInstances",
				Required: []string{"RegionId"},
				Filters:  []types.ParamMapping{{Name: "RegionId", MapsTo: "region"}},
				Data: []interface{}{
					map[string]interface{}{"id": "i-1", "region": "cn-hangzhou"},
					map[string]interface{}{"id": "i-2", "region": "cn-hangzhou"},
					map[string]interface{}{"id": "i-3", "region": "us-west-1"},
				},
			},
		},
	}
}

// signedPath monta a query assinada como o cliente faria.
func signedPath(t *testing.T, actionName, version string, wire map[string]string, creds action.Credentials) string {
	t.Helper()
	env, err := action.NewBuilder(signature.HMACSHA1{}).Build(
		&descriptor.ActionDefinition{Action: actionName},
		wire,
		&descriptor.ServiceDefinition{Host: "localhost", Version: version},
		creds,
		action.Defaults{},
	)
	if err != nil {
		t.Fatalf("Erro ao montar envelope: %v", err)
	}
	return "/?" + env.Encode()
}

func execute(s *ServerConfig, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Corpo não é JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

func TestNewHandler_StaticResponse(t *testing.T) {
	rr := execute(testServer(), signedPath(t, "DescribeRegions", "2014-05-26", nil, testCreds))

	if rr.Code != 200 {
		t.Fatalf("Status esperado 200, recebido %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["RequestId"] == "" || body["RequestId"] == nil {
		t.Errorf("RequestId ausente")
	}
	if regions, ok := body["Regions"].([]interface{}); !ok || len(regions) != 1 {
		t.Errorf("Regions incorreto: %v", body["Regions"])
	}
}

func TestNewHandler_DynamicData(t *testing.T) {
	s := testServer()

	t.Run("Filtro com match", func(t *testing.T) {
		rr := execute(s, signedPath(t, "DescribeInstances", "2014-05-26", map[string]string{"RegionId": "cn-hangzhou"}, testCreds))
		if rr.Code != 200 {
			t.Fatalf("Status esperado 200, recebido %d: %s", rr.Code, rr.Body.String())
		}
		if total := decodeBody(t, rr)["TotalCount"]; total != float64(2) {
			t.Errorf("TotalCount esperado 2, recebido %v", total)
		}
	})

	t.Run("Filtro sem match", func(t *testing.T) {
		rr := execute(s, signedPath(t, "DescribeInstances", "2014-05-26", map[string]string{"RegionId": "eu-central-1"}, testCreds))
		if rr.Code != 404 {
			t.Errorf("Status esperado 404, recebido %d", rr.Code)
		}
	})

	t.Run("Parâmetro obrigatório ausente", func(t *testing.T) {
		rr := execute(s, signedPath(t, "DescribeInstances", "2014-05-26", nil, testCreds))
		if rr.Code != 400 || decodeBody(t, rr)["Code"] != "MissingParameter" {
			t.Errorf("Esperado MissingParameter 400, recebido %d %s", rr.Code, rr.Body.String())
		}
	})
}

func TestNewHandler_Errors(t *testing.T) {
	s := testServer()

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "Assinatura com segredo errado",
			path:     signedPath(t, "DescribeRegions", "2014-05-26", nil, action.Credentials{AccessKeyID: "testid", AccessKeySecret: "wrong"}),
			wantCode: 400,
			wantErr:  "SignatureDoesNotMatch",
		},
		{
			name:     "Ação inexistente",
			path:     signedPath(t, "DescribeZones", "2014-05-26", nil, testCreds),
			wantCode: 404,
			wantErr:  "InvalidAction.NotFound",
		},
		{
			name:     "Chave desconhecida",
			path:     signedPath(t, "DescribeRegions", "2014-05-26", nil, action.Credentials{AccessKeyID: "other", AccessKeySecret: "testsecret"}),
			wantCode: 404,
			wantErr:  "InvalidAccessKeyId.NotFound",
		},
		{
			name:     "Versão inválida",
			path:     signedPath(t, "DescribeRegions", "2099-01-01", nil, testCreds),
			wantCode: 400,
			wantErr:  "InvalidVersion",
		},
		{
			name:     "Envelope incompleto",
			path:     "/?Action=DescribeRegions",
			wantCode: 400,
			wantErr:  "MissingParameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := execute(s, tt.path)
			if rr.Code != tt.wantCode {
				t.Errorf("Status esperado %d, recebido %d", tt.wantCode, rr.Code)
			}
			body := decodeBody(t, rr)
			if body["Code"] != tt.wantErr {
				t.Errorf("Code esperado %s, recebido %v", tt.wantErr, body["Code"])
			}
			if body["RequestId"] == "" {
				t.Errorf("RequestId ausente")
			}
		})
	}
}

func TestNewHandler_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	dir := t.TempDir()
	host := strings.TrimPrefix(srv.URL, "http://")
	writeFile(t, filepath.Join(dir, "ecs.yml"), "host: \""+host+"\"\nschema: http\nversion: \"2014-05-26\"\n")
	writeFile(t, filepath.Join(dir, "ecs", "describe_instances.yml"),
		"action: DescribeInstances\nparameters:\n  region_id:\n    parameter: RegionId\n")
	writeFile(t, filepath.Join(dir, "ecs", "describe_zones.yml"), "action: DescribeZones\n")

	d, err := action.NewDispatcher(context.Background(), "ecs", descriptor.NewRegistry(descriptor.NewFileSource(dir)), testCreds)
	if err != nil {
		t.Fatalf("Erro ao criar dispatcher: %v", err)
	}

	res, err := d.Invoke(context.Background(), "describe_instances", map[string]interface{}{"region_id": "us-west-1"})
	if err != nil {
		t.Fatalf("Invocação falhou: %v", err)
	}
	data, _ := res.Data.(map[string]interface{})
	if data["TotalCount"] != float64(1) {
		t.Errorf("TotalCount esperado 1, recebido %v", data["TotalCount"])
	}

	_, err = d.Invoke(context.Background(), "describe_zones", nil)
	var apiErr *action.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 || apiErr.Code != "InvalidAction.NotFound" {
		t.Errorf("Esperado APIError 404 InvalidAction.NotFound, recebido %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestValuesMatch(t *testing.T) {
	cases := []struct {
		a    interface{}
		b    string
		want bool
	}{
		{"x", "x", true},
		{float64(10), "10", true},
		{10, "10", true},
		{true, "TRUE", true},
		{float64(1), "abc", false},
		{[]string{}, "x", false},
	}
	for _, c := range cases {
		if got := valuesMatch(c.a, c.b); got != c.want {
			t.Errorf("valuesMatch(%v, %q) = %v, esperado %v", c.a, c.b, got, c.want)
		}
	}
}
