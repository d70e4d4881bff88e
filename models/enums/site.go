package enums

// TestimonialType 感言类型
type TestimonialType string

const (
	TestimonialPersonal    TestimonialType = "personal"
	TestimonialPartner     TestimonialType = "partner"
	TestimonialDonor       TestimonialType = "donor"
	TestimonialBeneficiary TestimonialType = "beneficiary"
)

// InquiryType 联系表单的咨询类型
type InquiryType string

const (
	InquiryGeneral     InquiryType = "general"
	InquiryVolunteer   InquiryType = "volunteer"
	InquiryPartnership InquiryType = "partnership"
	InquiryDonation    InquiryType = "donation"
	InquiryOther       InquiryType = "other"
)

// PaymentMethod 捐赠支付方式（仅记录，不对接支付网关）
type PaymentMethod string

const (
	PaymentJazzCash   PaymentMethod = "jazzcash"
	PaymentEasyPaisa  PaymentMethod = "easypaisa"
	PaymentBank       PaymentMethod = "bank"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentOther      PaymentMethod = "other"
)

// PaymentStatus 捐赠记录状态
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// GalleryCategory 图库分类
type GalleryCategory string

const (
	GalleryEvent    GalleryCategory = "event"
	GalleryActivity GalleryCategory = "activity"
	GalleryTeam     GalleryCategory = "team"
	GalleryImpact   GalleryCategory = "impact"
	GalleryOther    GalleryCategory = "other"
)
