package history

import (
	"testing"

	"grant-advisor-be/pkg/store"
)

func TestBuildExchanges(t *testing.T) {
	tests := []struct {
		name        string
		turns       []store.Turn
		newUserText string
		want        []struct{ role, content string }
	}{
		{
			name:        "empty transcript yields single user exchange",
			turns:       nil,
			newUserText: "こんにちは",
			want: []struct{ role, content string }{
				{"user", "こんにちは"},
			},
		},
		{
			name: "trailing stored turn is replaced by the new text",
			turns: []store.Turn{
				{Role: store.RoleUser, Content: "質問1"},
				{Role: store.RoleAssistant, Content: "回答1"},
				{Role: store.RoleUser, Content: "質問2"},
			},
			newUserText: "質問2",
			want: []struct{ role, content string }{
				{"user", "質問1"},
				{"assistant", "回答1"},
				{"user", "質問2"},
			},
		},
		{
			name: "dangling user turn from a failed stream is carried",
			turns: []store.Turn{
				{Role: store.RoleUser, Content: "失敗した質問"},
				{Role: store.RoleUser, Content: "再送した質問"},
			},
			newUserText: "再送した質問",
			want: []struct{ role, content string }{
				{"user", "失敗した質問"},
				{"user", "再送した質問"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildExchanges(tt.turns, tt.newUserText)

			if len(got) != len(tt.want) {
				t.Fatalf("exchange count = %d, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Role != want.role || got[i].Content != want.content {
					t.Errorf("exchange[%d] = {%s %q}, want {%s %q}",
						i, got[i].Role, got[i].Content, want.role, want.content)
				}
			}

			last := got[len(got)-1]
			if last.Role != store.RoleUser || last.Content != tt.newUserText {
				t.Errorf("final exchange = {%s %q}, want user exchange with the new text", last.Role, last.Content)
			}
		})
	}
}
