package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xdiner/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrReservationNotFound 在指定订座不存在时返回
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrInvalidStatusTransition 在订座状态机不允许该迁移时返回
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
)

// ValidationError 表示某个输入字段未通过校验，聚合保持不变。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Settings 描述站点品牌与 SEO 配置。
type Settings struct {
	Name           string
	Tagline        string
	PrimaryColor   string
	Theme          string
	Font           string
	SEOTitle       string
	SEODescription string
}

// OperatingHour 是一条营业时间的展示值。
type OperatingHour struct {
	Day  string
	Time string
}

// MenuItem 是一道菜品的快照值。
type MenuItem struct {
	ID          uint
	Name        string
	Price       float64
	Category    string
	Description string
	Image       string
}

// Reservation 是一条订座的快照值。
type Reservation struct {
	ID               uint
	Name             string
	Email            string
	Date             string
	Time             string
	Guests           int
	Status           string
	ConfirmationCode string
}

// Inquiry 是一条留言的快照值。
type Inquiry struct {
	ID      uint
	Name    string
	Email   string
	Subject string
	Message string
	Date    string
}

// BlogPost 是一篇文章的快照值。
type BlogPost struct {
	ID      uint
	Title   string
	Date    string
	Content string
	Image   string
}

// SiteContent 是站点内容聚合的值快照，消费方不持有任何库内引用。
// Revision 在每次成功变更后递增，可用于廉价的过期检测。
type SiteContent struct {
	Revision     uint64
	Settings     Settings
	Hours        []OperatingHour
	Menu         []MenuItem
	Reservations []Reservation
	Inquiries    []Inquiry
	Blog         []BlogPost
}

// SettingsInput 描述对站点配置的部分更新，nil 字段保持原值。
type SettingsInput struct {
	Name           *string
	Tagline        *string
	PrimaryColor   *string
	Theme          *string
	Font           *string
	SEOTitle       *string
	SEODescription *string
}

// MenuItemInput 定义创建/更新菜品时可配置字段，ID 为 0 时新建。
type MenuItemInput struct {
	ID          uint
	Name        string
	Price       float64
	Category    string
	Description string
	Image       string
}

// ReservationInput 定义前台订座提交的字段。
type ReservationInput struct {
	Name   string
	Email  string
	Date   string
	Time   string
	Guests int
}

// InquiryInput 定义前台留言提交的字段。
type InquiryInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// BlogPostInput 定义创建文章时可配置字段。
type BlogPostInput struct {
	Title   string
	Date    string
	Content string
	Image   string
}

// HourInput 定义一条营业时间。
type HourInput struct {
	Day  string
	Time string
}

// ContentStore 是站点内容聚合的唯一写入方。
// 所有变更串行执行且整体原子：校验失败或事务回滚时聚合保持原状。
type ContentStore struct {
	db       *gorm.DB
	mu       sync.RWMutex
	revision uint64
	now      func() time.Time
}

// NewContentStore 构造 ContentStore。
func NewContentStore(gdb *gorm.DB) *ContentStore {
	return &ContentStore{db: gdb, now: time.Now}
}

// SetClock 替换时间源，主要面向测试场景。
func (s *ContentStore) SetClock(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

var (
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	clockPattern    = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)
)

var colorTokens = map[string]bool{
	"red": true, "orange": true, "amber": true, "yellow": true,
	"green": true, "emerald": true, "teal": true, "blue": true,
	"indigo": true, "violet": true, "purple": true, "pink": true,
	"black": true, "white": true, "gray": true,
}

var siteThemes = map[string]bool{"modern": true, "warm": true, "dark": true}

var siteFonts = map[string]bool{"sans": true, "serif": true, "mono": true}

func validColor(value string) bool {
	if hexColorPattern.MatchString(value) {
		return true
	}
	return colorTokens[strings.ToLower(value)]
}

// Snapshot 返回当前聚合的值快照，无副作用。
func (s *ContentStore) Snapshot() (SiteContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadContent(s.db)
}

func (s *ContentStore) loadContent(gdb *gorm.DB) (SiteContent, error) {
	content := SiteContent{Revision: s.revision}

	var settings db.SiteSetting
	if err := gdb.First(&settings, db.SiteSettingID).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load settings: %w", err)
	}
	content.Settings = Settings{
		Name:           settings.Name,
		Tagline:        settings.Tagline,
		PrimaryColor:   settings.PrimaryColor,
		Theme:          settings.Theme,
		Font:           settings.Font,
		SEOTitle:       settings.SEOTitle,
		SEODescription: settings.SEODescription,
	}

	var hours []db.OperatingHour
	if err := gdb.Order("position ASC").Find(&hours).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load hours: %w", err)
	}
	content.Hours = make([]OperatingHour, 0, len(hours))
	for _, hour := range hours {
		content.Hours = append(content.Hours, OperatingHour{Day: hour.DayLabel, Time: hour.TimeLabel})
	}

	var menu []db.MenuItem
	if err := gdb.Order("id ASC").Find(&menu).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load menu: %w", err)
	}
	content.Menu = make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		content.Menu = append(content.Menu, MenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Category:    item.Category,
			Description: item.Description,
			Image:       item.Image,
		})
	}

	var reservations []db.Reservation
	if err := gdb.Order("id ASC").Find(&reservations).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load reservations: %w", err)
	}
	content.Reservations = make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		content.Reservations = append(content.Reservations, Reservation{
			ID:               r.ID,
			Name:             r.Name,
			Email:            r.Email,
			Date:             r.Date,
			Time:             r.Time,
			Guests:           r.Guests,
			Status:           r.Status,
			ConfirmationCode: r.ConfirmationCode,
		})
	}

	var inquiries []db.Inquiry
	if err := gdb.Order("id ASC").Find(&inquiries).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load inquiries: %w", err)
	}
	content.Inquiries = make([]Inquiry, 0, len(inquiries))
	for _, q := range inquiries {
		content.Inquiries = append(content.Inquiries, Inquiry{
			ID:      q.ID,
			Name:    q.Name,
			Email:   q.Email,
			Subject: q.Subject,
			Message: q.Message,
			Date:    q.Date,
		})
	}

	var posts []db.BlogPost
	if err := gdb.Order("id ASC").Find(&posts).Error; err != nil {
		return SiteContent{}, fmt.Errorf("load blog posts: %w", err)
	}
	content.Blog = make([]BlogPost, 0, len(posts))
	for _, post := range posts {
		content.Blog = append(content.Blog, BlogPost{
			ID:      post.ID,
			Title:   post.Title,
			Date:    post.Date,
			Content: post.Content,
			Image:   post.Image,
		})
	}

	return content, nil
}

// commit 在持锁状态下执行变更事务，成功后递增版本号并返回新快照。
func (s *ContentStore) commit(mutate func(tx *gorm.DB) error) (SiteContent, error) {
	if err := s.db.Transaction(mutate); err != nil {
		return SiteContent{}, err
	}
	s.revision++
	return s.loadContent(s.db)
}

// ReplaceSettings 将给定字段合并进站点配置，未指定的字段保持不变。
func (s *ContentStore) ReplaceSettings(input SettingsInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return SiteContent{}, invalidField("name", "餐厅名称不能为空")
		}
		updates["name"] = name
	}
	if input.PrimaryColor != nil {
		color := strings.TrimSpace(*input.PrimaryColor)
		if !validColor(color) {
			return SiteContent{}, invalidField("primaryColor", "不是可识别的颜色值")
		}
		updates["primary_color"] = color
	}
	if input.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*input.Theme))
		if !siteThemes[theme] {
			return SiteContent{}, invalidField("theme", "不支持的主题")
		}
		updates["theme"] = theme
	}
	if input.Font != nil {
		font := strings.ToLower(strings.TrimSpace(*input.Font))
		if !siteFonts[font] {
			return SiteContent{}, invalidField("font", "不支持的字体")
		}
		updates["font"] = font
	}
	if input.Tagline != nil {
		updates["tagline"] = strings.TrimSpace(*input.Tagline)
	}
	if input.SEOTitle != nil {
		updates["seo_title"] = strings.TrimSpace(*input.SEOTitle)
	}
	if input.SEODescription != nil {
		updates["seo_description"] = strings.TrimSpace(*input.SEODescription)
	}

	if len(updates) == 0 {
		return s.loadContent(s.db)
	}

	return s.commit(func(tx *gorm.DB) error {
		if err := tx.Model(&db.SiteSetting{}).
			Where("id = ?", db.SiteSettingID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		return nil
	})
}

// UpsertMenuItem 更新同 ID 菜品；ID 不存在时分配下一个未用 ID 并追加。
func (s *ContentStore) UpsertMenuItem(input MenuItemInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return SiteContent{}, invalidField("name", "菜品名称不能为空")
	}
	if input.Price < 0 {
		return SiteContent{}, invalidField("price", "价格不能为负数")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = db.CategoryMains
	}

	return s.commit(func(tx *gorm.DB) error {
		if input.ID != 0 {
			result := tx.Model(&db.MenuItem{}).
				Where("id = ?", input.ID).
				Updates(map[string]interface{}{
					"name":        name,
					"price":       input.Price,
					"category":    category,
					"description": strings.TrimSpace(input.Description),
					"image":       strings.TrimSpace(input.Image),
				})
			if result.Error != nil {
				return fmt.Errorf("update menu item: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				return nil
			}
		}

		var maxID uint
		row := tx.Model(&db.MenuItem{}).Select("COALESCE(MAX(id), 0)").Row()
		if err := row.Scan(&maxID); err != nil {
			return fmt.Errorf("next menu id: %w", err)
		}

		item := db.MenuItem{
			Name:        name,
			Price:       input.Price,
			Category:    category,
			Description: strings.TrimSpace(input.Description),
			Image:       strings.TrimSpace(input.Image),
		}
		item.ID = maxID + 1
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create menu item: %w", err)
		}
		return nil
	})
}

// RemoveMenuItem 删除指定菜品；不存在时静默返回当前快照。
func (s *ContentStore) RemoveMenuItem(id uint) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Unscoped().Where("id = ?", id).Delete(&db.MenuItem{})
	if result.Error != nil {
		return SiteContent{}, fmt.Errorf("remove menu item: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.revision++
	}
	return s.loadContent(s.db)
}

// AddReservation 校验并追加一条订座，初始状态恒为 pending。
func (s *ContentStore) AddReservation(input ReservationInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return SiteContent{}, invalidField("name", "姓名不能为空")
	}
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		return SiteContent{}, invalidField("email", "邮箱格式不正确")
	}
	if input.Guests < 1 {
		return SiteContent{}, invalidField("guests", "人数至少为 1")
	}

	date := strings.TrimSpace(input.Date)
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return SiteContent{}, invalidField("date", "日期格式应为 YYYY-MM-DD")
	}
	today := s.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return SiteContent{}, invalidField("date", "日期不能早于今天")
	}

	clock := strings.TrimSpace(input.Time)
	if clock != "" && !clockPattern.MatchString(clock) {
		return SiteContent{}, invalidField("time", "时间格式应为 HH:MM")
	}

	return s.commit(func(tx *gorm.DB) error {
		reservation := db.Reservation{
			Name:             name,
			Email:            email,
			Date:             date,
			Time:             clock,
			Guests:           input.Guests,
			Status:           db.ReservationPending,
			ConfirmationCode: uuid.New().String(),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return nil
	})
}

// 允许的状态迁移；cancelled 为终态，confirmed 不能回退。
var allowedTransitions = map[string]map[string]bool{
	db.ReservationPending: {
		db.ReservationConfirmed: true,
		db.ReservationCancelled: true,
	},
	db.ReservationConfirmed: {
		db.ReservationCancelled: true,
	},
}

// UpdateReservationStatus 推进订座状态机，非法迁移保持原状。
func (s *ContentStore) UpdateReservationStatus(id uint, status string) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case db.ReservationPending, db.ReservationConfirmed, db.ReservationCancelled:
	default:
		return SiteContent{}, invalidField("status", "未知的订座状态")
	}

	var reservation db.Reservation
	if err := s.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SiteContent{}, ErrReservationNotFound
		}
		return SiteContent{}, fmt.Errorf("get reservation: %w", err)
	}

	if !allowedTransitions[reservation.Status][status] {
		return SiteContent{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, reservation.Status, status)
	}

	return s.commit(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Reservation{}).
			Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return fmt.Errorf("update reservation status: %w", err)
		}
		return nil
	})
}

// AddInquiry 校验并追加一条留言。
func (s *ContentStore) AddInquiry(input InquiryInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return SiteContent{}, invalidField("name", "姓名不能为空")
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return SiteContent{}, invalidField("subject", "主题不能为空")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return SiteContent{}, invalidField("message", "内容不能为空")
	}
	email := strings.TrimSpace(input.Email)
	if email != "" && !emailPattern.MatchString(email) {
		return SiteContent{}, invalidField("email", "邮箱格式不正确")
	}

	return s.commit(func(tx *gorm.DB) error {
		inquiry := db.Inquiry{
			Name:    name,
			Email:   email,
			Subject: subject,
			Message: message,
			Date:    s.now().Format("2006-01-02"),
		}
		if err := tx.Create(&inquiry).Error; err != nil {
			return fmt.Errorf("create inquiry: %w", err)
		}
		return nil
	})
}

// AddBlogPost 追加一篇文章并分配 ID。
func (s *ContentStore) AddBlogPost(input BlogPostInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return SiteContent{}, invalidField("title", "标题不能为空")
	}
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format("Jan 2, 2006")
	}

	return s.commit(func(tx *gorm.DB) error {
		post := db.BlogPost{
			Title:   title,
			Date:    date,
			Content: input.Content,
			Image:   strings.TrimSpace(input.Image),
		}
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("create blog post: %w", err)
		}
		return nil
	})
}

// ReplaceHours 整体替换营业时间，保持传入顺序。
func (s *ContentStore) ReplaceHours(inputs []HourInput) (SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, input := range inputs {
		if strings.TrimSpace(input.Day) == "" {
			return SiteContent{}, invalidField("day", fmt.Sprintf("第 %d 行的日期标签不能为空", i+1))
		}
		if strings.TrimSpace(input.Time) == "" {
			return SiteContent{}, invalidField("time", fmt.Sprintf("第 %d 行的时间标签不能为空", i+1))
		}
	}

	return s.commit(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&db.OperatingHour{}).Error; err != nil {
			return fmt.Errorf("clear hours: %w", err)
		}
		for i, input := range inputs {
			hour := db.OperatingHour{
				Position:  i + 1,
				DayLabel:  strings.TrimSpace(input.Day),
				TimeLabel: strings.TrimSpace(input.Time),
			}
			if err := tx.Create(&hour).Error; err != nil {
				return fmt.Errorf("create hour: %w", err)
			}
		}
		return nil
	})
}
