package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminal", "没有结束符", []string{"没有结束符"}},
		{"two sentences", "今天天气很好。明天呢？", []string{"今天天气很好。", "明天呢？"}},
		{"ascii terminals", "Hello. World! Done?", []string{"Hello.", "World!", "Done?"}},
		{"exclamation", "真的！太好了！", []string{"真的！", "太好了！"}},
		{"trailing spaces", "第一句。   第二句。  ", []string{"第一句。", "第二句。"}},
		{"consecutive terminals", "什么？！", []string{"什么？", "！"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.in))
		})
	}
}

func TestSegmentRestartable(t *testing.T) {
	in := "一句。两句！三句？"
	first := Segment(in)
	assert.Equal(t, first, Segment(in))
	assert.Len(t, first, 3)
}

func TestSegmentLines(t *testing.T) {
	lines := []string{
		"第一段的开头，",
		"在这里结束。第二段",
		"",
		"继续并结束！残余内容",
	}
	want := []string{"第一段的开头，在这里结束。", "第二段继续并结束！", "残余内容"}
	assert.Equal(t, want, SegmentLines(lines))
}
