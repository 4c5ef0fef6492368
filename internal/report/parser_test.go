package report

import (
	"reflect"
	"testing"
)

func TestParseAllSections(t *testing.T) {
	raw := "### 潜台词解码\n真实意思是...\n### 行动建议\n- 先确认截止时间\n- 列出风险点\n### 建议回复\n好的，我先确认一下细节"

	got := Parse(raw)

	if got.Subtext != "真实意思是..." {
		t.Errorf("Subtext = %q, want %q", got.Subtext, "真实意思是...")
	}
	wantActions := []string{"先确认截止时间", "列出风险点"}
	if !reflect.DeepEqual(got.Actions, wantActions) {
		t.Errorf("Actions = %v, want %v", got.Actions, wantActions)
	}
	if got.Response != "好的，我先确认一下细节" {
		t.Errorf("Response = %q, want %q", got.Response, "好的，我先确认一下细节")
	}
	if got.Degraded {
		t.Error("Degraded = true for a fully parseable input")
	}
}

func TestParseSectionOrder(t *testing.T) {
	// Section order is not guaranteed by the remote service.
	raw := "### 建议回复\n收到\n### 潜台词解码\n他在催你\n### 行动建议\n1. 回个消息"

	got := Parse(raw)

	if got.Subtext != "他在催你" {
		t.Errorf("Subtext = %q, want %q", got.Subtext, "他在催你")
	}
	if got.Response != "收到" {
		t.Errorf("Response = %q, want %q", got.Response, "收到")
	}
	if !reflect.DeepEqual(got.Actions, []string{"回个消息"}) {
		t.Errorf("Actions = %v, want [回个消息]", got.Actions)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSubtext  string
		wantActions  []string
		wantResponse string
		wantDegraded bool
	}{
		{
			name: "empty input",
			raw:  "",
		},
		{
			name:         "no recognized headings falls back to subtext",
			raw:          "随便写点什么，没有任何标题。",
			wantSubtext:  "随便写点什么，没有任何标题。",
			wantDegraded: true,
		},
		{
			name:         "garbage markdown falls back to subtext",
			raw:          "### 总结\n这里是一个未知的段落\n### 其他\n更多内容",
			wantSubtext:  "### 总结\n这里是一个未知的段落\n### 其他\n更多内容",
			wantDegraded: true,
		},
		{
			name:         "duplicate reply heading keeps the last body",
			raw:          "### 建议回复\n第一版回复\n### 建议回复\n第二版回复",
			wantResponse: "第二版回复",
		},
		{
			name:        "unknown sections are skipped without error",
			raw:         "### 免责声明\n仅供参考\n### 潜台词解码\n注意措辞",
			wantSubtext: "注意措辞",
		},
		{
			name:        "leading text before the first heading is ignored",
			raw:         "以下是分析结果：\n### 潜台词解码\n委婉的拒绝",
			wantSubtext: "委婉的拒绝",
		},
		{
			name:        "nested heading prefixes are stripped from subtext",
			raw:         "### 潜台词解码\n## 重点\n对方其实不满意\n#### 注\n需要尽快回应",
			wantSubtext: "重点\n对方其实不满意\n注\n需要尽快回应",
		},
		{
			name:        "decorated subtext heading",
			raw:         "### 💡潜台词解码 \n表面客气，实际在施压",
			wantSubtext: "表面客气，实际在施压",
		},
		{
			name:        "numbered action list",
			raw:         "### 行动建议\n1. 保存聊天记录\n2. 同步给你的直属领导\n\n3. 书面确认结论",
			wantSubtext: "### 行动建议\n1. 保存聊天记录\n2. 同步给你的直属领导\n\n3. 书面确认结论",
			wantActions: []string{"保存聊天记录", "同步给你的直属领导", "书面确认结论"},
			// actions alone cannot prove a successful parse
			wantDegraded: true,
		},
		{
			name:         "blank action lines are dropped",
			raw:          "### 行动建议\n- 先别回复\n\n-   \n- 想清楚再说\n### 建议回复\n我考虑一下",
			wantActions:  []string{"先别回复", "想清楚再说"},
			wantResponse: "我考虑一下",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got.Subtext != tt.wantSubtext {
				t.Errorf("Subtext = %q, want %q", got.Subtext, tt.wantSubtext)
			}
			if !reflect.DeepEqual(got.Actions, tt.wantActions) {
				t.Errorf("Actions = %v, want %v", got.Actions, tt.wantActions)
			}
			if got.Response != tt.wantResponse {
				t.Errorf("Response = %q, want %q", got.Response, tt.wantResponse)
			}
			if got.Degraded != tt.wantDegraded {
				t.Errorf("Degraded = %v, want %v", got.Degraded, tt.wantDegraded)
			}
		})
	}
}
