package security

import "testing"

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award(1); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award(42)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims.Gid != 42 {
		t.Fatalf("期望 gid==42, got=%d", claims.Gid)
	}
}

func TestParse_换密钥后失效(t *testing.T) {
	t.Setenv("JWT_SECRET", "a")
	token, err := Award(7)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	t.Setenv("JWT_SECRET", "b")
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("期望签名校验失败")
	}
}
