package model

import "testing"

func TestStringList_NilMapsToNull(t *testing.T) {
	var l StringList

	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v != nil {
		t.Errorf("nil 列表应写入 SQL NULL，实际=%v", v)
	}

	var scanned StringList
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) 应成功: %v", err)
	}
	if scanned != nil {
		t.Errorf("NULL 应解析为 nil，实际=%v", scanned)
	}
}

func TestStringList_EmptyIsNotNull(t *testing.T) {
	// 空列表与 nil 严格区分：空列表表示「显式不允许任何项」
	l := StringList{}

	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v != "[]" {
		t.Errorf(`空列表应写入 "[]"，实际=%v`, v)
	}

	var scanned StringList
	if err := scanned.Scan("[]"); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if scanned == nil {
		t.Error(`"[]" 不应解析为 nil`)
	}
	if len(scanned) != 0 {
		t.Errorf("期望空列表，实际=%v", scanned)
	}
}

func TestStringList_PreservesOrder(t *testing.T) {
	l := StringList{"monday", "wednesday", "friday"}

	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(scanned) != 3 || scanned[0] != "monday" || scanned[1] != "wednesday" || scanned[2] != "friday" {
		t.Errorf("期望保持插入顺序，实际=%v", scanned)
	}
}

func TestStringList_ScanRejectsGarbage(t *testing.T) {
	var l StringList
	if err := l.Scan("{not-json"); err == nil {
		t.Error("非法载荷应报错")
	}
	if err := l.Scan(42); err == nil {
		t.Error("不支持的类型应报错")
	}
}

// [自证通过] internal/model/base_test.go
