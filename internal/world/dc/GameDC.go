package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"GeoPits/internal/shared/logs"
	"GeoPits/internal/world/app/port"
	"GeoPits/internal/world/entity"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	saveTimeout       = 5 * time.Second
	retryBackoff      = 200 * time.Millisecond
)

// GameDC 是单局的写回缓存：actor 改内存，DC 负责把最新快照异步落库。
// 除 writerLoop 外，所有方法都只应在持有它的 actor 里调用。
type GameDC struct {
	repo       port.GameRepository
	settings   entity.Settings
	entity     *entity.Game
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.GamePersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewGameDC(repo port.GameRepository, s entity.Settings, flushEvery time.Duration) *GameDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	d := &GameDC{
		repo:       repo,
		settings:   s,
		flushEvery: flushEvery,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Load 从仓储恢复一局。
func (d *GameDC) Load(ctx context.Context, id entity.GameID) (*entity.Game, error) {
	if d.repo == nil {
		return nil, errors.New("game repository is nil")
	}
	rec, err := d.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := entity.RestoreGame(id, d.settings, rec.Momento)
	if err != nil {
		return nil, err
	}
	d.entity = g
	return g, nil
}

// Create 新开一局，新局是脏的，下一次 Flush 落库。
func (d *GameDC) Create(id entity.GameID) *entity.Game {
	d.entity = entity.NewGame(id, d.settings)
	return d.entity
}

func (d *GameDC) Flush(ctx context.Context) error {
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errors.New("game repository is nil")
	}
	s, err := d.buildNextSnapshot()
	if err != nil {
		return err
	}
	d.enqueueLatest(s)
	return nil
}

func (d *GameDC) IsDirty() bool {
	return d.entity.Dirty()
}

func (d *GameDC) Entity() *entity.Game {
	return d.entity
}

func (d *GameDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 先 flush，再等 writer 把队列写完。
func (d *GameDC) Close(ctx context.Context) error {
	flushErr := d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return flushErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delete 丢掉还没落库的快照，等 writer 退出后删除仓储记录。之后 DC 不再写库，Close 也不会。
func (d *GameDC) Delete(ctx context.Context) error {
	if d.repo == nil {
		return errors.New("game repository is nil")
	}
	if d.entity == nil {
		return errors.New("game dc has no entity")
	}

	d.mu.Lock()
	d.pending = nil
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	// 正在写的那一次要先写完，否则它可能落在删除之后
	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return d.repo.Delete(ctx, d.entity.ID())
}

func (d *GameDC) buildNextSnapshot() (*entity.GamePersistSnapshot, error) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	return d.entity.BuildPersistSnapshot(version)
}

func (d *GameDC) enqueueLatest(s *entity.GamePersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	d.signal()
}

func (d *GameDC) popPending() *entity.GamePersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 关闭后不再重试，避免 Close 卡死在坏掉的存储上。
func (d *GameDC) requeueOnError(s *entity.GamePersistSnapshot) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	d.signal()
	return true
}

func (d *GameDC) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *GameDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *GameDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := d.repo.Save(ctx, s)
		cancel()
		if err == nil {
			continue
		}
		logs.Warn("save game momento failed",
			zap.Int64("gameId", int64(s.GameID)),
			zap.Uint64("version", s.Version),
			zap.Error(err),
		)
		// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
		if !d.requeueOnError(s) {
			return
		}
		time.Sleep(retryBackoff)
	}
}
