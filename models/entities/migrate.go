package entities

// All 返回需要自动迁移的全部实体，按外键依赖顺序排列
func All() []interface{} {
	return []interface{}{
		&StaffAccount{},
		&Partner{},
		&BlogPost{},
		&Testimonial{},
		&ContactMessage{},
		&Donation{},
		&NewsletterSubscriber{},
		&GalleryItem{},
		&SiteSettings{},
	}
}
