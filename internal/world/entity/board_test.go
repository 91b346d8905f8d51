package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"GeoPits/internal/world/entity/domain"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.Seed = "test-seed"
	s.VisibilityRadius = 2
	return s
}

func TestBoard_CellForPoint_向下取整(t *testing.T) {
	b := NewBoard(testSettings())
	got := b.CellForPoint(LatLng{Lat: 0.00015, Lng: -0.00005})
	if got != (Cell{I: 1, J: -1}) {
		t.Fatalf("got=%v", got)
	}
	b.CellForPoint(LatLng{Lat: 0.00012, Lng: -0.00001})
	if b.KnownCellCount() != 1 {
		t.Fatalf("同一格只应记录一次, got=%d", b.KnownCellCount())
	}
}

func TestBoard_CellBounds与中心点(t *testing.T) {
	b := NewBoard(testSettings())
	c := Cell{I: 2, J: -3}
	bounds := b.CellBounds(c)
	if bounds.SouthWest.Lat != 2*1e-4 || bounds.NorthEast.Lng != -2*1e-4 {
		t.Fatalf("bounds got=%+v", bounds)
	}
	center := b.CellCenter(c)
	if !bounds.Contains(center) || b.CellForPoint(center) != c {
		t.Fatalf("中心点应落在格子内: %+v", center)
	}
}

func TestBoard_CellsNearPoint_范围(t *testing.T) {
	b := NewBoard(testSettings())
	p := b.CellCenter(Cell{I: 10, J: 10})
	cells := b.CellsNearPoint(p)
	if len(cells) != 16 {
		t.Fatalf("r=2 期望 16 格, got=%d", len(cells))
	}
	if cells[0] != (Cell{I: 8, J: 8}) || cells[len(cells)-1] != (Cell{I: 11, J: 11}) {
		t.Fatalf("范围应为 [-r, r): first=%v last=%v", cells[0], cells[len(cells)-1])
	}
	if !b.InNeighborhood(p, Cell{I: 8, J: 11}) || b.InNeighborhood(p, Cell{I: 12, J: 10}) {
		t.Fatalf("InNeighborhood 与 CellsNearPoint 不一致")
	}
}

func TestBoard_CellTokens_确定性生成(t *testing.T) {
	a, b := NewBoard(testSettings()), NewBoard(testSettings())
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		c := Cell{I: i, J: -i}
		ta, tb := a.CellTokens(c), b.CellTokens(c)
		if len(ta) < 1 || len(ta) > 3 {
			t.Fatalf("代币数量应在 [1,3], cell=%v got=%d", c, len(ta))
		}
		if len(ta) != len(tb) {
			t.Fatalf("同种子生成结果不同, cell=%v", c)
		}
		for k := range ta {
			if ta[k] != tb[k] || ta[k] != domain.NewToken(c, k) {
				t.Fatalf("token 不一致: %v %v", ta[k], tb[k])
			}
		}
		seen[len(ta)] = true
	}
	if !seen[1] || !seen[2] || !seen[3] {
		t.Fatalf("200 个格子应覆盖 1/2/3 三种数量, got=%v", seen)
	}
}

func TestBoard_只生成一次(t *testing.T) {
	b := NewBoard(testSettings())
	c := Cell{I: 5, J: 5}
	first := b.CellTokens(c)
	if _, err := b.PopTokenFromCell(c, 0); err != nil {
		t.Fatalf("pop err=%v", err)
	}
	if got := b.CellTokens(c); len(got) != len(first)-1 {
		t.Fatalf("取走后不应重新生成, got=%d want=%d", len(got), len(first)-1)
	}

	// 返回值是副本
	cp := b.CellTokens(c)
	if len(cp) > 0 {
		cp[0] = domain.TokenFromID("forged")
		if b.CellTokens(c)[0].ID() == "forged" {
			t.Fatalf("CellTokens 应返回副本")
		}
	}
}

func TestBoard_Pop越界与按id移除(t *testing.T) {
	b := NewBoard(testSettings())
	c := Cell{I: 1, J: 1}
	n := len(b.CellTokens(c))
	if _, err := b.PopTokenFromCell(c, n); !errors.Is(err, ErrTokenNotInPit) {
		t.Fatalf("期望 ErrTokenNotInPit, got=%v", err)
	}
	want := domain.NewToken(c, 0)
	got, err := b.RemoveTokenFromCell(c, want.ID())
	if err != nil || got != want {
		t.Fatalf("remove got=%v err=%v", got, err)
	}
	if _, err := b.RemoveTokenFromCell(c, want.ID()); !errors.Is(err, ErrTokenNotInPit) {
		t.Fatalf("重复移除期望 ErrTokenNotInPit, got=%v", err)
	}
}

func TestBoard_AddToken_先生成再追加(t *testing.T) {
	b := NewBoard(testSettings())
	c := Cell{I: 3, J: 4}
	foreign := domain.NewToken(Cell{I: 9, J: 9}, 0)
	b.AddTokenToCell(c, foreign)
	list := b.CellTokens(c)
	if list[len(list)-1] != foreign || list[0] != domain.NewToken(c, 0) {
		t.Fatalf("追加前应先生成原有代币: %v", list)
	}
}

func TestBoard_IsPit_概率边界(t *testing.T) {
	s := testSettings()
	s.SpawnProbability = 1
	all := NewBoard(s)
	s.SpawnProbability = 0
	none := NewBoard(s)
	for i := 0; i < 50; i++ {
		c := Cell{I: i, J: i}
		if !all.IsPit(c) || none.IsPit(c) {
			t.Fatalf("概率 1/0 时应全是/全不是矿坑, cell=%v", c)
		}
	}
}

func TestBoard_Momento_RoundTrip(t *testing.T) {
	src := NewBoard(testSettings())
	emptied := Cell{I: 0, J: 0}
	for range src.CellTokens(emptied) {
		if _, err := src.PopTokenFromCell(emptied, 0); err != nil {
			t.Fatalf("pop err=%v", err)
		}
	}
	moved := domain.NewToken(emptied, 0)
	src.AddTokenToCell(Cell{I: -1, J: 2}, moved)

	raw, err := json.Marshal(src.ToMomento())
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	var m BoardMomento
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal err=%v", err)
	}

	dst := NewBoard(testSettings())
	if err := dst.FromMomento(m); err != nil {
		t.Fatalf("FromMomento err=%v", err)
	}
	if got := dst.CellTokens(emptied); len(got) != 0 {
		t.Fatalf("清空的格子不应重新生成, got=%v", got)
	}
	got := dst.CellTokens(Cell{I: -1, J: 2})
	if got[len(got)-1] != moved {
		t.Fatalf("追加的代币丢失: %v", got)
	}
}

func TestBoard_FromMomento_非法数据不改状态(t *testing.T) {
	b := NewBoard(testSettings())
	c := Cell{I: 7, J: 7}
	before := b.CellTokens(c)

	tok := domain.NewToken(c, 0)
	cases := map[string]BoardMomento{
		"tile_width":     {TileWidth: 1, Cells: map[string][]Token{}},
		"bad_key":        {Cells: map[string][]Token{"x": {tok}}},
		"dup_token":      {Cells: map[string][]Token{"7,7": {tok}, "2,2": {tok}}},
		"dup_cell":       {Cells: map[string][]Token{"1,1": {}, "01,1": {}}},
		"origin_missing": {Cells: map[string][]Token{"1,1": {tok}}},
		"serial_range":   {Cells: map[string][]Token{"7,7": {domain.NewToken(c, 3)}}},
		"bad_token_id":   {Cells: map[string][]Token{"7,7": {domain.TokenFromID("hello")}}},
	}
	for name, m := range cases {
		if err := b.FromMomento(m); !errors.Is(err, ErrMomentoInvalid) {
			t.Fatalf("%s: 期望 ErrMomentoInvalid, got=%v", name, err)
		}
	}
	if after := b.CellTokens(c); len(after) != len(before) {
		t.Fatalf("校验失败不应修改棋盘")
	}
}
