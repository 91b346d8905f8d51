package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestCellKey_RoundTrip(t *testing.T) {
	for _, c := range []Cell{{0, 0}, {-3, 12}, {369994, -1220533}} {
		got, err := ParseCellKey(c.Key())
		if err != nil || got != c {
			t.Fatalf("ParseCellKey(%q) got=%v err=%v", c.Key(), got, err)
		}
	}
	if k := (Cell{I: -3, J: 12}).Key(); k != "-3,12" {
		t.Fatalf("key 格式不对: %q", k)
	}
}

func TestParseCellKey_非法输入(t *testing.T) {
	for _, key := range []string{"", "1", "a,b", "1,2,3", "1;2"} {
		if _, err := ParseCellKey(key); !errors.Is(err, ErrInvalidCellKey) {
			t.Fatalf("ParseCellKey(%q) 期望 ErrInvalidCellKey, got=%v", key, err)
		}
	}
}

func TestToken_ID格式与JSON(t *testing.T) {
	tk := NewToken(Cell{I: -1, J: 5}, 2)
	if tk.ID() != "-1:5#2" {
		t.Fatalf("token id got=%q", tk.ID())
	}
	raw, err := json.Marshal([]Token{tk})
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if string(raw) != `["-1:5#2"]` {
		t.Fatalf("token 应序列化为字符串, got=%s", raw)
	}
	var back []Token
	if err := json.Unmarshal(raw, &back); err != nil || back[0] != tk {
		t.Fatalf("unmarshal got=%v err=%v", back, err)
	}
}

func TestParseTokenID(t *testing.T) {
	c, serial, err := ParseTokenID("-1:5#2")
	if err != nil || c != (Cell{I: -1, J: 5}) || serial != 2 {
		t.Fatalf("got cell=%v serial=%d err=%v", c, serial, err)
	}
	if c, serial, err := NewToken(Cell{I: 3, J: -4}, 0).Origin(); err != nil || c != (Cell{I: 3, J: -4}) || serial != 0 {
		t.Fatalf("Origin got cell=%v serial=%d err=%v", c, serial, err)
	}
	for _, id := range []string{"", "hello", "1:2", "1#0", "a:2#0", "1:2#x", "1:2#-1", "01:2#0", "+1:2#0", "1:2#00"} {
		if _, _, err := ParseTokenID(id); !errors.Is(err, ErrInvalidTokenID) {
			t.Fatalf("ParseTokenID(%q) 期望 ErrInvalidTokenID, got=%v", id, err)
		}
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" North ")
	if err != nil || d != North {
		t.Fatalf("got=%v err=%v", d, err)
	}
	if di, dj := East.Delta(); di != 0 || dj != 1 {
		t.Fatalf("east delta got=(%d,%d)", di, dj)
	}
	if _, err := ParseDirection("up"); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("期望 ErrInvalidDirection, got=%v", err)
	}
}

func TestLuck_确定且落在区间内(t *testing.T) {
	a := Luck("seed", "1,2")
	if a != Luck("seed", "1,2") {
		t.Fatalf("同输入结果不一致")
	}
	if a == Luck("other", "1,2") && a == Luck("seed", "2,1") {
		t.Fatalf("不同输入不应全部相同")
	}
	for i := 0; i < 1000; i++ {
		v := Luck("", Cell{I: i, J: -i}.Key())
		if v < 0 || v >= 1 {
			t.Fatalf("luck 越界: %v", v)
		}
	}
}

func TestLatLng_Validate(t *testing.T) {
	if err := (LatLng{Lat: 36.9995, Lng: -122.0533}).Validate(); err != nil {
		t.Fatalf("合法坐标报错: %v", err)
	}
	bad := []LatLng{{Lat: 91}, {Lng: -181}, {Lat: math.NaN()}, {Lng: math.Inf(1)}}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("%+v 期望 ErrInvalidLocation, got=%v", p, err)
		}
	}
}
