package translate

import (
	"regexp"
	"strings"
)

// Term is one keyword substitution.
type Term struct {
	Source string
	Target string
}

// Dictionary applies an ordered list of case-insensitive, whole-word
// substitutions. Earlier terms win, so longer phrases go first.
type Dictionary struct {
	terms []compiledTerm
}

type compiledTerm struct {
	re     *regexp.Regexp
	target string
}

func NewDictionary(terms []Term) *Dictionary {
	d := &Dictionary{}
	for _, t := range terms {
		src := strings.TrimSpace(t.Source)
		if src == "" {
			continue
		}
		d.terms = append(d.terms, compiledTerm{
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(src) + `\b`),
			target: t.Target,
		})
	}
	return d
}

// Apply substitutes every known term; unmatched text passes through unchanged.
func (d *Dictionary) Apply(text string) string {
	if d == nil {
		return text
	}
	for _, t := range d.terms {
		text = t.re.ReplaceAllLiteralString(text, t.target)
	}
	return text
}

// Len returns the number of terms.
func (d *Dictionary) Len() int { return len(d.terms) }

// ChineseTerms is the built-in table for zh targets.
var ChineseTerms = []Term{
	{"Artificial Intelligence", "人工智能"},
	{"Large Language Models", "大语言模型"},
	{"Large Language Model", "大语言模型"},
	{"Machine Learning", "机器学习"},
	{"Deep Learning", "深度学习"},
	{"Open Source", "开源"},
	{"Open-Source", "开源"},
	{"Show HN", "作品展示"},
	{"Ask HN", "社区提问"},
	{"Text-to-Video", "文生视频"},
	{"Text-to-Image", "文生图"},
	{"Launches", "发布"},
	{"Launched", "发布"},
	{"Launch", "发布"},
	{"Introducing", "推出"},
	{"Announcing", "宣布"},
	{"Released", "发布"},
	{"Release", "发布"},
	{"Developers", "开发者"},
	{"Developer", "开发者"},
	{"Assistants", "助手"},
	{"Assistant", "助手"},
	{"Agents", "智能体"},
	{"Agent", "智能体"},
	{"Models", "模型"},
	{"Model", "模型"},
	{"Tools", "工具"},
	{"Tool", "工具"},
	{"Apps", "应用"},
	{"App", "应用"},
	{"Image", "图像"},
	{"Video", "视频"},
	{"Coding", "编程"},
	{"Search", "搜索"},
	{"Free", "免费"},
	{"Beta", "测试版"},
}

// DictionaryFor returns the built-in dictionary for locale, or nil when there is none.
func DictionaryFor(locale string) *Dictionary {
	if detectableLang(locale) == detectableLang("zh") {
		return NewDictionary(ChineseTerms)
	}
	return nil
}
