package designcode

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// Prefix 標記字串為設計代碼的固定首字元
	Prefix = "W"
	// Alphabet 非前綴字元的 36 個符號，不排除易混淆字元 (0/O, 1/I)
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength 預設代碼總長度
	DefaultLength = 8
	// MaxLength 可接受的代碼總長度上限
	MaxLength = 64
)

// ErrInvalidCode 使用者輸入的代碼格式不正確
var ErrInvalidCode = errors.New("invalid design code")

// Generate 產生長度為 max(totalLength, 1) 的設計代碼，首字元固定為 "W"
func Generate(src Source, totalLength int) string {
	if totalLength < len(Prefix) {
		totalLength = len(Prefix)
	}

	var b strings.Builder
	b.Grow(totalLength)
	b.WriteString(Prefix)
	for i := len(Prefix); i < totalLength; i++ {
		b.WriteByte(Alphabet[src.Index(len(Alphabet))])
	}
	return b.String()
}

// Generator 綁定隨機來源與代碼長度的產生器
type Generator struct {
	src    Source
	length int
}

// NewGenerator 建立 Generator，length 小於 1 時使用 DefaultLength
func NewGenerator(src Source, length int) *Generator {
	if length < 1 {
		length = DefaultLength
	}
	return &Generator{src: src, length: length}
}

// New 產生一組設定長度的代碼
func (g *Generator) New() string {
	return Generate(g.src, g.length)
}

// Generate 產生指定長度的代碼
func (g *Generator) Generate(totalLength int) string {
	return Generate(g.src, totalLength)
}

func (g *Generator) Length() int {
	return g.length
}

// LengthFromNumber 將弱型別呼叫端 (例如 JavaScript) 傳入的數值轉為代碼長度。
// NaN 與無限大回傳 false；小數捨去，超過 MaxLength 時以 MaxLength 為準。
func LengthFromNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > MaxLength {
		return MaxLength, true
	}
	if f < 0 {
		return 0, true
	}
	return int(f), true
}

// Normalize 去除空白並轉為大寫
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate 檢查代碼是否以 "W" 開頭、其餘字元皆屬於 Alphabet 且不超過 MaxLength。
// 不檢查目前設定的長度，調整 code.length 前發出的代碼仍可使用。
func Validate(code string) error {
	if len(code) > MaxLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidCode, MaxLength)
	}
	if !strings.HasPrefix(code, Prefix) {
		return fmt.Errorf("%w: %q must start with %s", ErrInvalidCode, code, Prefix)
	}
	for i := len(Prefix); i < len(code); i++ {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return fmt.Errorf("%w: %q has illegal character at %d", ErrInvalidCode, code, i)
		}
	}
	return nil
}
