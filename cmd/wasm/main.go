//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/engine"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/infrastructure/persistence"
)

var (
	codes       *designcode.Generator
	quoteEngine *engine.SimpleEngine
)

func main() {
	// 亂數來源只在啟動時選擇一次
	src, err := designcode.SelectSource(designcode.ModeAuto, nil)
	if err != nil {
		src = designcode.NewWeakSource(nil)
	}
	codes = designcode.NewGenerator(src, designcode.DefaultLength)
	quoteEngine = engine.NewSimpleEngine(persistence.NewInMemDesignRepository(), persistence.NewInMemProductRepository())

	// 暴露函數給 JavaScript
	js.Global().Set("goGenerateDesignCode", js.FuncOf(generateDesignCode))
	js.Global().Set("goValidateDesignCode", js.FuncOf(validateDesignCode))
	js.Global().Set("goQuoteDesign", js.FuncOf(quoteDesign))

	fmt.Println("Wasm 模組已載入")

	// 保持運行
	select {}
}

// generateDesignCode(length?) 回傳設計代碼，長度未指定或不是數字時使用預設長度
func generateDesignCode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return codes.New()
	}
	n, ok := designcode.LengthFromNumber(args[0].Float())
	if !ok {
		return codes.New()
	}
	return codes.Generate(n)
}

// validateDesignCode(code) 回傳空字串表示合法，否則回傳錯誤訊息
func validateDesignCode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "需要設計代碼"
	}
	if err := designcode.Validate(designcode.Normalize(args[0].String())); err != nil {
		return err.Error()
	}
	return ""
}

// quoteDesign(designJSON) 以內建型錄在瀏覽器端試算報價
func quoteDesign(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "需要 Design JSON"
	}

	var d design.Design
	if err := json.Unmarshal([]byte(args[0].String()), &d); err != nil {
		return "解析 JSON 失敗: " + err.Error()
	}

	q, err := quoteEngine.QuoteDesign(context.Background(), &d)
	if err != nil {
		fmt.Printf("報價失敗: %v\n", err)
		return err.Error()
	}

	// 轉換為 JSON 字串回傳給 JS
	jsonRes, _ := json.Marshal(q)
	return string(jsonRes)
}
