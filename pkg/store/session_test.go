package store

import (
	"testing"

	"grant-advisor-be/pkg/knowledge"
)

func TestSessionPendingItem(t *testing.T) {
	s := &Session{ID: "s1"}

	if _, ok := s.ConsumePendingItem(); ok {
		t.Fatal("consume on empty slot must report not-found")
	}

	s.SetPendingItem(knowledge.Item{ItemID: "S1-1", Label: "事業所名"})
	s.SetPendingItem(knowledge.Item{ItemID: "S1-2", Label: "所在地"})

	item, ok := s.ConsumePendingItem()
	if !ok {
		t.Fatal("consume after set must succeed")
	}
	if item.ItemID != "S1-2" {
		t.Errorf("pending item = %s, want the later set S1-2 (last write wins)", item.ItemID)
	}

	if _, ok := s.ConsumePendingItem(); ok {
		t.Error("second consume must report not-found")
	}
}

func TestSessionReset(t *testing.T) {
	s := &Session{
		ID:            "s1",
		SelectedGrant: "助成金A",
		SelectedForm:  "様式第1号",
		ReviewReport:  "レポート",
	}
	s.AppendTurn(RoleUser, "質問")
	s.AppendTurn(RoleAssistant, "回答")
	s.SetPendingItem(knowledge.Item{ItemID: "S1-1"})

	s.Reset()

	if len(s.Turns) != 0 {
		t.Errorf("turns after reset = %d, want 0", len(s.Turns))
	}
	if s.PendingItem != nil {
		t.Error("pending item must be cleared by reset")
	}
	if s.ReviewReport != "" {
		t.Error("review report must be cleared by reset")
	}
	if s.SelectedGrant != "助成金A" || s.SelectedForm != "様式第1号" {
		t.Error("grant/form selection must survive reset")
	}
}

func TestSessionAppendTurnOrder(t *testing.T) {
	s := &Session{ID: "s1"}
	s.AppendTurn(RoleUser, "one")
	s.AppendTurn(RoleAssistant, "two")
	s.AppendTurn(RoleAssistant, "three") // consecutive assistant turns are legal

	want := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleAssistant, Content: "three"},
	}
	if len(s.Turns) != len(want) {
		t.Fatalf("turn count = %d, want %d", len(s.Turns), len(want))
	}
	for i := range want {
		if s.Turns[i] != want[i] {
			t.Errorf("turn[%d] = %+v, want %+v", i, s.Turns[i], want[i])
		}
	}
}
