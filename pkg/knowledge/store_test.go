package knowledge

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	s, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantKeys := []string{"様式第1号（計画認定申請書）", "様式第2号（支給申請書）"}
	if !reflect.DeepEqual(s.FormKeys(), wantKeys) {
		t.Errorf("FormKeys() = %v, want %v (sorted)", s.FormKeys(), wantKeys)
	}

	form, ok := s.Form("様式第1号（計画認定申請書）")
	if !ok {
		t.Fatal("form lookup failed")
	}
	if len(form.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(form.Items))
	}
	if form.Items[0].ItemID != "S1-1" || form.Items[0].Label != "事業所名" {
		t.Errorf("item[0] = %+v", form.Items[0])
	}

	if _, ok := s.Form("存在しない様式"); ok {
		t.Error("unknown form key must not resolve")
	}

	if !json.Valid(s.Rules()) {
		t.Error("rules are not valid JSON")
	}

	chunks := s.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	if chunks[0].Source != "支給要領.pdf" {
		t.Errorf("chunks out of document order: first source = %s", chunks[0].Source)
	}
}

// The raw form JSON must round-trip so the prompt embeds fields this
// package does not model (form_name).
func TestFormSchemaRawJSON(t *testing.T) {
	s, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	form, _ := s.Form("様式第2号（支給申請書）")

	var decoded map[string]interface{}
	if err := json.Unmarshal(form.RawJSON(), &decoded); err != nil {
		t.Fatalf("RawJSON does not parse: %v", err)
	}
	if decoded["form_name"] != "支給申請書" {
		t.Errorf("form_name = %v, unmodeled fields must survive", decoded["form_name"])
	}

	itemsJSON, err := form.ItemsJSON()
	if err != nil {
		t.Fatalf("ItemsJSON: %v", err)
	}
	var items []Item
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		t.Fatalf("ItemsJSON does not parse: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != "S2-1" {
		t.Errorf("items = %+v", items)
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load("testdata/does-not-exist"); err == nil {
		t.Error("missing dataset directory must fail")
	}
}
