package config

import (
	"strings"
	"testing"
)

func TestSetKey(t *testing.T) {
	store := NewMemoryStore()
	a := NewAccessor(store)

	if err := SetKey(a, "BackupDebug", "true"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if raw, _, _ := store.Get(DefaultSection, "BackupDebug"); raw != "true" {
		t.Errorf("stored BackupDebug = %q, want true", raw)
	}

	if err := SetKey(a, "SavePath", `E:\drops`); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if got := a.Text(SavePath); got != `E:\drops` {
		t.Errorf("SavePath = %q", got)
	}
}

func TestSetKeyRejectsBadInput(t *testing.T) {
	a := NewAccessor(NewMemoryStore())

	err := SetKey(a, "BackupDebug", "yes")
	if err == nil || !strings.Contains(err.Error(), "invalid bool") {
		t.Errorf("bad bool: err = %v", err)
	}

	err = SetKey(a, "NoSuchKey", "1")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "SavePath") {
		t.Errorf("error %q should list valid keys", err.Error())
	}
}

func TestShowAll(t *testing.T) {
	store := NewMemoryStore()
	store.Set(DefaultSection, "History", "false")

	infos := ShowAll(NewAccessor(store))
	if len(infos) != len(ValidKeys()) {
		t.Fatalf("ShowAll returned %d keys, want %d", len(infos), len(ValidKeys()))
	}
	byKey := make(map[string]KeyInfo)
	for _, ki := range infos {
		byKey[ki.Key] = ki
	}
	if ki := byKey["History"]; ki.Value != "false" || ki.Default != "true" || ki.Kind != KindBool {
		t.Errorf("History info = %+v", ki)
	}
	if ki := byKey["BackupDebug"]; ki.Value != "false" || ki.Section != DefaultSection {
		t.Errorf("BackupDebug info = %+v", ki)
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(KindSize, "10, 20")
	if err != nil {
		t.Fatal(err)
	}
	if v.Size() != (Size{Width: 10, Height: 20}) {
		t.Errorf("Size = %+v", v.Size())
	}
	if _, err := ParseValue(KindPoint, "1,x"); err == nil {
		t.Error("expected strict error for bad point component")
	}
	if _, err := ParseValue(KindFloat, "0.1.2"); err == nil {
		t.Error("expected error for bad float")
	}
}
