package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"GeoPits/internal/shared/security"
	"GeoPits/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET("/me", Auth(), func(c *gin.Context) {
		gid, _ := GameID(c)
		c.JSON(http.StatusOK, gin.H{"code": transport.OK, "data": gid})
	})
	return e
}

func TestAuth_Bearer与Query(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := security.Award(77)
	if err != nil {
		t.Fatal(err)
	}
	e := newAuthEngine()

	for name, req := range map[string]*http.Request{
		"header": func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/me", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			return r
		}(),
		"query": httptest.NewRequest(http.MethodGet, "/me?token="+token, nil),
	} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: got=%d body=%s", name, w.Code, w.Body.String())
		}
		var body struct {
			Data int64 `json:"data"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Data != 77 {
			t.Fatalf("%s: gid got=%d", name, body.Data)
		}
	}
}

func TestAuth_拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newAuthEngine()

	cases := map[string]string{
		"missing": "",
		"garbage": "Bearer abc.def.ghi",
		"scheme":  "Basic xxx",
	}
	for name, header := range cases {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: got=%d", name, w.Code)
		}
		var body struct {
			Code int `json:"code"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Code != transport.Unauthorized {
			t.Fatalf("%s: code got=%d", name, body.Code)
		}
	}
}

func TestParseBizCode(t *testing.T) {
	if code, ok := parseBizCode([]byte(`{"code":202,"msg":"x"}`)); !ok || code != 202 {
		t.Fatalf("got=%d ok=%v", code, ok)
	}
	if _, ok := parseBizCode([]byte(`{"status":"ok"}`)); ok {
		t.Fatalf("没有 code 字段应返回 false")
	}
	if _, ok := parseBizCode([]byte(`not json`)); ok {
		t.Fatalf("非 json 应返回 false")
	}
}
