package dify

import (
	"encoding/json"
	"testing"
)

func TestExtractOutput(t *testing.T) {
	tests := []struct {
		name    string
		outputs string
		want    string
	}{
		{
			name:    "text field preferred",
			outputs: `{"text": "### 潜台词解码\n内容", "result": "ignored"}`,
			want:    "### 潜台词解码\n内容",
		},
		{
			name:    "result field when text missing",
			outputs: `{"result": "备用内容"}`,
			want:    "备用内容",
		},
		{
			name:    "result field when text empty",
			outputs: `{"text": "", "result": "备用内容"}`,
			want:    "备用内容",
		},
		{
			name:    "string outputs passed through",
			outputs: `"整段就是文本"`,
			want:    "整段就是文本",
		},
		{
			name:    "unknown shape serialized as-is",
			outputs: `{"answer": "别处的字段"}`,
			want:    `{"answer": "别处的字段"}`,
		},
		{
			name:    "non-string text field skipped",
			outputs: `{"text": 42, "result": "数字兜底"}`,
			want:    "数字兜底",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractOutput(json.RawMessage(tt.outputs))
			if got != tt.want {
				t.Errorf("ExtractOutput(%s) = %q, want %q", tt.outputs, got, tt.want)
			}
		})
	}
}
