package slugify

import (
	"strings"

	"github.com/gosimple/slug"
)

// Make 產生 URL slug：小寫、& 轉 and、非英數轉 -、重複 - 合併。
// 對已是 slug 的輸入具冪等性。
func Make(input string) string {
	return slug.Make(strings.TrimSpace(input))
}

// IsValid 檢查字串是否已是合法 slug
func IsValid(input string) bool {
	return input != "" && slug.IsSlug(input)
}
