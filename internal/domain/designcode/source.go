package designcode

import (
	"crypto/rand"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"sync"
)

// 隨機來源模式
const (
	ModeAuto   = "auto"
	ModeCrypto = "crypto"
	ModeMath   = "math"
)

// Source 從 [0, n) 之間均勻抽出一個索引
type Source interface {
	Index(n int) int
}

// FloatSource 產生 [0, 1) 之間的偽隨機浮點數 (math/rand 相容)
type FloatSource interface {
	Float64() float64
}

type mathFloat struct{}

func (mathFloat) Float64() float64 { return mrand.Float64() }

// WeakSource 以非密碼學等級的偽隨機數作為來源
type WeakSource struct {
	f FloatSource
}

// NewWeakSource 建立 WeakSource，f 為 nil 時使用 math/rand/v2 的全域來源
func NewWeakSource(f FloatSource) *WeakSource {
	if f == nil {
		f = mathFloat{}
	}
	return &WeakSource{f: f}
}

func (s *WeakSource) Index(n int) int {
	if n <= 1 {
		return 0
	}
	i := int(s.f.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// StrongSource 以密碼學等級的位元組來源抽樣，採用拒絕取樣維持均勻分佈。
// 讀取失敗時改用 fallback，確保產生器不會失敗。
type StrongSource struct {
	mu       sync.Mutex
	r        io.Reader
	fallback Source
	buf      [32]byte
	pos      int
	n        int
}

// NewStrongSource 建立 StrongSource，r 為 nil 時使用 crypto/rand.Reader
func NewStrongSource(r io.Reader) *StrongSource {
	if r == nil {
		r = rand.Reader
	}
	return &StrongSource{r: r, fallback: NewWeakSource(nil)}
}

func (s *StrongSource) Index(n int) int {
	if n <= 1 {
		return 0
	}
	if n > 256 {
		return s.fallback.Index(n)
	}
	limit := 256 - 256%n

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		b, err := s.nextByte()
		if err != nil {
			return s.fallback.Index(n)
		}
		if int(b) < limit {
			return int(b) % n
		}
	}
}

func (s *StrongSource) nextByte() (byte, error) {
	if s.pos >= s.n {
		n, err := io.ReadFull(s.r, s.buf[:])
		if err != nil {
			return 0, err
		}
		s.pos, s.n = 0, n
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// Probe 檢查 r 能否提供隨機位元組
func Probe(r io.Reader) bool {
	if r == nil {
		return false
	}
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return err == nil
}

// SelectSource 依模式與環境能力選擇隨機來源，應在程式啟動時呼叫一次。
// auto 模式下 strong 可用則使用密碼學來源，否則退回偽隨機來源。
func SelectSource(mode string, strong io.Reader) (Source, error) {
	if strong == nil {
		strong = rand.Reader
	}
	switch mode {
	case "", ModeAuto:
		if Probe(strong) {
			return NewStrongSource(strong), nil
		}
		return NewWeakSource(nil), nil
	case ModeCrypto:
		if !Probe(strong) {
			return nil, fmt.Errorf("crypto random source unavailable")
		}
		return NewStrongSource(strong), nil
	case ModeMath:
		return NewWeakSource(nil), nil
	default:
		return nil, fmt.Errorf("unknown random source mode: %s", mode)
	}
}

// SequenceSource 依序回傳固定索引 (循環)，用於測試與可重現的示範
type SequenceSource struct {
	mu      sync.Mutex
	indexes []int
	next    int
}

func NewSequenceSource(indexes ...int) *SequenceSource {
	return &SequenceSource{indexes: indexes}
}

func (s *SequenceSource) Index(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.indexes) == 0 || n <= 0 {
		return 0
	}
	i := s.indexes[s.next%len(s.indexes)]
	s.next++
	return ((i % n) + n) % n
}
