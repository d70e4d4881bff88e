package workflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength 与 blog_posts.slug 列宽一致
const MaxSlugLength = 200

// Slugify 由任意文本生成 URL 安全的 slug。
// NFKD 分解后去掉组合音标（"Café" -> "cafe"），转小写，
// 每一段连续的非 [a-z0-9] 字符折叠为一个 "-"，并去掉首尾的 "-"。
// 相同输入总是得到相同输出；无法转写的字符（如非拉丁文字）被当作分隔符丢弃，结果可能为空串。
func Slugify(text string) string {
	decomposed, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		decomposed = text
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingHyphen := false
	for _, r := range strings.ToLower(decomposed) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}
