package advice

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"action":"addTodo","payload":{"task":"X"}}`,
			want:  `{"action":"addTodo","payload":{"task":"X"}}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"action\":\"addTodo\",\"payload\":{\"task\":\"X\"}}\n```",
			want:  `{"action":"addTodo","payload":{"task":"X"}}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"action\":\"addGoal\",\"payload\":{\"name\":\"Bike\"}}\n```",
			want:  `{"action":"addGoal","payload":{"name":"Bike"}}`,
		},
		{
			name:  "chatter after object",
			input: "{\"action\":\"addTodo\",\"payload\":{\"task\":\"X\"}}\nLet me know if you need anything else!",
			want:  `{"action":"addTodo","payload":{"task":"X"}}`,
		},
		{
			name:  "plain text untouched",
			input: "You spent $50 on groceries this month.",
			want:  "You spent $50 on groceries this month.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.input); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bold", input: "You have **three** accounts.", want: "You have three accounts."},
		{name: "italic", input: "Spend *less* next month.", want: "Spend less next month."},
		{name: "inline code", input: "Account `acc_1` holds the most.", want: "Account acc_1 holds the most."},
		{name: "plain", input: "Nothing to strip here.", want: "Nothing to strip here."},
		{name: "mixed", input: "**Total**: `15210.55` in *Main Checking*.", want: "Total: 15210.55 in Main Checking."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.input); got != tt.want {
				t.Errorf("StripMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}
