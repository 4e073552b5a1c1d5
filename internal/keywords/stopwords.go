package keywords

// stopWords is a curated, domain-preserving stop list: basic conjunctions,
// pronouns, and generic connective vocabulary, but not domain terms like
// defect, requirement, module, user, test.
var stopWords = map[string]struct{}{
	"的": {}, "了": {}, "在": {}, "是": {}, "我": {}, "你": {}, "他": {}, "她": {}, "它": {},
	"们": {}, "这": {}, "那": {}, "与": {}, "和": {}, "或": {}, "但": {}, "而": {}, "因为": {},
	"所以": {}, "如果": {}, "就": {}, "都": {}, "很": {}, "还": {}, "也": {}, "不": {}, "没有": {},
	"有": {}, "能": {}, "会": {}, "要": {}, "可以": {}, "应该": {}, "可能": {}, "已经": {},
	"正在": {}, "将要": {}, "一个": {}, "一些": {},

	"其他": {}, "其它": {}, "等等": {}, "等": {}, "及": {}, "以及": {}, "包括": {}, "含有": {},
	"具有": {}, "按照": {}, "依据": {}, "来自": {}, "来源": {}, "来源于": {}, "属于": {}, "归属": {},
	"首先": {}, "然后": {}, "接着": {}, "同时": {}, "此外": {}, "另外": {}, "除了": {}, "除此之外": {},

	"当前": {}, "目前": {}, "现在": {}, "当时": {}, "之前": {}, "之后": {}, "以前": {}, "以后": {},
	"最后": {}, "最终": {},
}

func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
