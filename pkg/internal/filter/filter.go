// Package filter 实现文件列表的分类与搜索过滤.
// 分类按扩展名匹配，搜索按文件名大小写不敏感的子串匹配，两者为 AND 关系.
package filter

import (
	"fmt"
	"path"
	"strings"

	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// Category 文件分类.
type Category string

const (
	CategoryAll   Category = "All"
	CategoryPDF   Category = "PDF"
	CategoryDocs  Category = "Docs"
	CategoryExcel Category = "Excel"
)

// categoryExts 分类到扩展名集合的映射，All 不在其中（匹配一切）.
var categoryExts = map[Category][]string{
	CategoryPDF:   {"pdf"},
	CategoryDocs:  {"doc", "docx"},
	CategoryExcel: {"xls", "xlsx"},
}

// Categories 返回全部分类，顺序固定.
func Categories() []Category {
	return []Category{CategoryAll, CategoryPDF, CategoryDocs, CategoryExcel}
}

// ParseCategory 解析分类参数，空串视为 All，未知分类返回错误.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryAll, nil
	}

	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown category: %s", s)
}

// Ext 返回文件名的小写扩展名，不含点；无扩展名时返回空串.
func Ext(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Matches 判断文件名是否属于该分类.
func (c Category) Matches(name string) bool {
	if c == CategoryAll {
		return true
	}

	exts, ok := categoryExts[c]
	if !ok {
		return false
	}

	ext := Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}

	return false
}

// MatchesQuery 判断文件名是否包含查询子串（大小写不敏感）.
// 空查询匹配一切.
func MatchesQuery(name, query string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// Apply 对文件列表同时应用分类与搜索过滤，返回新切片，不修改输入.
func Apply(files []types.FileObject, c Category, query string) []types.FileObject {
	result := make([]types.FileObject, 0, len(files))

	for _, f := range files {
		if !c.Matches(f.Name) {
			continue
		}

		if !MatchesQuery(f.Name, query) {
			continue
		}

		result = append(result, f)
	}

	return result
}
