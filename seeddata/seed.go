// Package seeddata 内置的示例文章。数据库里一篇文章都没有时，公开博客页面展示这些内容。
package seeddata

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed posts.yaml
var postsYAML []byte

// Post 一篇内置示例文章，字段已是展示格式
type Post struct {
	ID       int    `yaml:"id" json:"id"`
	Slug     string `yaml:"slug" json:"slug"`
	Title    string `yaml:"title" json:"title"`
	Category string `yaml:"category" json:"category"`
	Date     string `yaml:"date" json:"date"`
	Author   string `yaml:"author" json:"author"`
	Image    string `yaml:"image" json:"image"`
	Excerpt  string `yaml:"excerpt" json:"excerpt"`
	Content  string `yaml:"content" json:"content"`
}

type catalog struct {
	Blog []Post `yaml:"blog"`
	News []Post `yaml:"news"`
}

// FallbackImages 文章没有封面时按序号轮流使用的静态图片
var FallbackImages = []string{
	"assets/uni.jpg",
	"assets/water.jpg",
	"assets/construction.jpg",
	"assets/hockey.jpg",
	"assets/student.jpg",
	"assets/river.jpg",
	"assets/darbar.jpg",
	"assets/labour.jpg",
	"assets/mission-preview.jpg",
}

var (
	loadOnce sync.Once
	loaded   catalog
	bySlug   map[string]Post
	loadErr  error
)

// Parse 解析 YAML 格式的示例文章目录
func Parse(data []byte) (blog, news []Post, err error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("解析示例文章失败: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Blog)+len(c.News))
	for _, p := range append(append([]Post{}, c.Blog...), c.News...) {
		if p.Slug == "" {
			return nil, nil, fmt.Errorf("示例文章 %d 缺少 slug", p.ID)
		}
		if _, dup := seen[p.Slug]; dup {
			return nil, nil, fmt.Errorf("示例文章 slug 重复: %s", p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return c.Blog, c.News, nil
}

func load() {
	loadOnce.Do(func() {
		loaded.Blog, loaded.News, loadErr = Parse(postsYAML)
		bySlug = make(map[string]Post, len(loaded.Blog)+len(loaded.News))
		for _, p := range loaded.Blog {
			bySlug[p.Slug] = p
		}
		for _, p := range loaded.News {
			bySlug[p.Slug] = p
		}
	})
}

// Validate 启动时调用，内置数据损坏时尽早失败
func Validate() error {
	load()
	return loadErr
}

// Blog 返回博客类示例文章的副本
func Blog() []Post {
	load()
	return append([]Post(nil), loaded.Blog...)
}

// News 返回新闻类示例文章的副本
func News() []Post {
	load()
	return append([]Post(nil), loaded.News...)
}

// BySlug 按 slug 查找示例文章
func BySlug(slug string) (Post, bool) {
	load()
	p, ok := bySlug[slug]
	return p, ok
}

// ImageFor 为没有封面的文章挑选展示图片：slug 与示例文章相同时沿用其图片，否则按 index 轮流取 FallbackImages。
func ImageFor(slug string, index int) string {
	if p, ok := BySlug(slug); ok && p.Image != "" {
		return p.Image
	}
	if index < 0 {
		index = -index
	}
	return FallbackImages[index%len(FallbackImages)]
}
