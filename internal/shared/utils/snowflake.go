package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// 2024-01-01 00:00:00 UTC，毫秒
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift = seqBits
	timeShift = nodeBits + seqBits
)

type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{
		nodeID: nodeID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if ts < s.lastTS {
		// 时钟回拨时不回退
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			for ts <= s.lastTS {
				ts = s.now()
			}
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

var (
	defaultMu        sync.Mutex
	defaultSnowflake *Snowflake
)

// ConfigureSnowflake 设置进程级生成器的节点号，启动时调用一次。
func ConfigureSnowflake(nodeID int64) error {
	gen, err := NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultSnowflake = gen
	defaultMu.Unlock()
	return nil
}

// NextSnowflakeID 未配置时按节点 1 懒初始化。
func NextSnowflakeID() (int64, error) {
	defaultMu.Lock()
	if defaultSnowflake == nil {
		defaultSnowflake, _ = NewSnowflake(1)
	}
	gen := defaultSnowflake
	defaultMu.Unlock()

	if gen == nil {
		return 0, errors.New("snowflake generator is nil")
	}
	return gen.NextID(), nil
}
