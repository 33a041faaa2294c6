package dict

// defaultCorrections is the built-in layer of common OCR misrecognitions and
// typos. It is read-only; user entries with the same key shadow it.
var defaultCorrections = map[string]string{
	"青晰":   "清晰",
	"即然":   "既然",
	"在次":   "再次",
	"已后":   "以后",
	"原則":   "原则",
	"按排":   "安排",
	"拔打":   "拨打",
	"部份":   "部分",
	"车箱":   "车厢",
	"机率":   "几率",
	"身分":   "身份",
	"藉口":   "借口",
	"其它":   "其他",
	"再接再励": "再接再厉",
	"按装":   "安装",
	"甘败下风": "甘拜下风",
	"一股作气": "一鼓作气",
	"自抱自弃": "自暴自弃",
}

// DefaultCorrections returns a copy of the built-in correction layer.
func DefaultCorrections() map[string]string {
	out := make(map[string]string, len(defaultCorrections))
	for k, v := range defaultCorrections {
		out[k] = v
	}
	return out
}
