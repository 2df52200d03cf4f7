package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xdiner/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Meta 是每个公开页面共享的站点元信息。
type Meta struct {
	SiteName       string `json:"siteName"`
	Tagline        string `json:"tagline"`
	PrimaryColor   string `json:"primaryColor"`
	Theme          string `json:"theme"`
	Font           string `json:"font"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
}

// MenuItemView 是一道菜品的展示模型，价格固定两位小数。
type MenuItemView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	PriceLabel  string `json:"priceLabel"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// MenuSection 按分类组织菜品。
type MenuSection struct {
	Category string         `json:"category"`
	Items    []MenuItemView `json:"items"`
}

// HourView 是一条营业时间的展示模型。
type HourView struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// BlogPostView 是一篇文章的展示模型，正文已渲染并消毒。
type BlogPostView struct {
	ID    uint          `json:"id"`
	Title string        `json:"title"`
	Date  string        `json:"date"`
	HTML  template.HTML `json:"html"`
	Image string        `json:"image"`
}

// HomePage 组合首页的全部区块。
type HomePage struct {
	Hero     Meta          `json:"hero"`
	Sections []MenuSection `json:"sections"`
	Hours    []HourView    `json:"hours"`
}

// MenuPage 是独立菜单页。
type MenuPage struct {
	Categories []string      `json:"categories"`
	Sections   []MenuSection `json:"sections"`
}

// BlogPage 是博客列表页。
type BlogPage struct {
	Posts []BlogPostView `json:"posts"`
}

// ContactPage 是联系页。
type ContactPage struct {
	Hours []HourView `json:"hours"`
}

// Page 是 (内容快照, 当前页面) 的纯投影结果。
type Page struct {
	View    View         `json:"view"`
	Meta    Meta         `json:"meta"`
	Home    *HomePage    `json:"home,omitempty"`
	Menu    *MenuPage    `json:"menu,omitempty"`
	Blog    *BlogPage    `json:"blog,omitempty"`
	Contact *ContactPage `json:"contact,omitempty"`
}

// FormatPrice 将价格渲染为两位小数的展示值。
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// 默认分类顺序与前台筛选一致，额外分类按出现顺序排在其后。
var categoryOrder = []string{"Mains", "Sides", "Appetizers", "Drinks"}

// MenuSections 是首页与菜单页共用的唯一菜单构建路径，
// 保证两处的排序与价格格式不发生分叉。
func MenuSections(content service.SiteContent) []MenuSection {
	grouped := map[string][]MenuItemView{}
	order := append([]string(nil), categoryOrder...)
	known := map[string]bool{}
	for _, category := range order {
		known[category] = true
	}

	for _, item := range content.Menu {
		if !known[item.Category] {
			known[item.Category] = true
			order = append(order, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], MenuItemView{
			ID:          item.ID,
			Name:        item.Name,
			PriceLabel:  FormatPrice(item.Price),
			Category:    item.Category,
			Description: item.Description,
			Image:       item.Image,
		})
	}

	sections := make([]MenuSection, 0, len(order))
	for _, category := range order {
		items := grouped[category]
		if len(items) == 0 {
			continue
		}
		sections = append(sections, MenuSection{Category: category, Items: items})
	}
	return sections
}

func metaOf(content service.SiteContent) Meta {
	return Meta{
		SiteName:       content.Settings.Name,
		Tagline:        content.Settings.Tagline,
		PrimaryColor:   content.Settings.PrimaryColor,
		Theme:          content.Settings.Theme,
		Font:           content.Settings.Font,
		SEOTitle:       content.Settings.SEOTitle,
		SEODescription: content.Settings.SEODescription,
	}
}

func hoursOf(content service.SiteContent) []HourView {
	hours := make([]HourView, 0, len(content.Hours))
	for _, hour := range content.Hours {
		hours = append(hours, HourView{Day: hour.Day, Time: hour.Time})
	}
	return hours
}

// RenderMarkdown 将 Markdown 正文渲染为消毒后的 HTML。
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Render 根据内容快照和当前页面产出页面模型；不持有快照、不回写内容。
func Render(content service.SiteContent, v View) Page {
	page := Page{View: v, Meta: metaOf(content)}

	switch v {
	case ViewMenu:
		sections := MenuSections(content)
		categories := make([]string, 0, len(sections)+1)
		categories = append(categories, "All")
		for _, section := range sections {
			categories = append(categories, section.Category)
		}
		page.Menu = &MenuPage{Categories: categories, Sections: sections}
	case ViewBlog:
		posts := make([]BlogPostView, 0, len(content.Blog))
		for _, post := range content.Blog {
			posts = append(posts, BlogPostView{
				ID:    post.ID,
				Title: post.Title,
				Date:  post.Date,
				HTML:  RenderMarkdown(post.Content),
				Image: post.Image,
			})
		}
		page.Blog = &BlogPage{Posts: posts}
	case ViewContact:
		page.Contact = &ContactPage{Hours: hoursOf(content)}
	default:
		// home 及其它未知页面都回退到首页投影
		page.View = ViewHome
		page.Home = &HomePage{
			Hero:     page.Meta,
			Sections: MenuSections(content),
			Hours:    hoursOf(content),
		}
	}

	return page
}
