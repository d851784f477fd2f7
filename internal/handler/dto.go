package handler

import (
	"time"

	"github.com/storefront-api/internal/models"
)

// The external API keeps the original frontend's field naming, including the
// "_id" identifier. The mapping from internal models happens here and only
// here; model structs never carry external JSON tags.

// UserDTO is the password-stripped public user view
type UserDTO struct {
	ID        uint        `json:"_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func newUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is the registration/login response: public view plus token
type AuthResponse struct {
	ID       uint        `json:"_id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Token    string      `json:"token"`
}

func newAuthResponse(u *models.User, token string) AuthResponse {
	return AuthResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Token:    token,
	}
}

// CategoryDTO is the full category view
type CategoryDTO struct {
	ID        uint      `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoryRefDTO is the joined category carried by each product
type CategoryRefDTO struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}

// ProductDTO is the full product view
type ProductDTO struct {
	ID            uint            `json:"_id"`
	User          uint            `json:"user"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Images        []string        `json:"images"`
	Description   string          `json:"description"`
	Category      *CategoryRefDTO `json:"category"`
	Price         float64         `json:"price"`
	OriginalPrice *float64        `json:"originalPrice,omitempty"`
	CountInStock  *int            `json:"countInStock"`
	IsVirtual     bool            `json:"isVirtual"`
	ExecutionTime string          `json:"executionTime,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func newProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:            p.ID,
		User:          p.UserID,
		Name:          p.Name,
		Image:         p.Image,
		Images:        p.Images,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		CountInStock:  p.CountInStock,
		IsVirtual:     p.IsVirtual,
		ExecutionTime: p.ExecutionTime,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if p.Category != nil {
		dto.Category = &CategoryRefDTO{ID: p.Category.ID, Name: p.Category.Name}
	}
	return dto
}

func newProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = newProductDTO(&products[i])
	}
	return dtos
}

// ProductPageDTO is the paginated catalog response
type ProductPageDTO struct {
	Products []ProductDTO `json:"products"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
}

// MediaDTO is the media library entry view
type MediaDTO struct {
	ID         uint             `json:"_id"`
	FileName   string           `json:"fileName"`
	FileURL    string           `json:"fileUrl"`
	FileType   models.MediaType `json:"fileType"`
	AltText    *string          `json:"altText,omitempty"`
	Size       *int64           `json:"size,omitempty"`
	UploadedBy uint             `json:"uploadedBy"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func newMediaDTO(m *models.Media) MediaDTO {
	return MediaDTO{
		ID:         m.ID,
		FileName:   m.FileName,
		FileURL:    m.FileURL,
		FileType:   m.FileType,
		AltText:    m.AltText,
		Size:       m.Size,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// MediaPageDTO is the paginated media library response
type MediaPageDTO struct {
	MediaFiles []MediaDTO `json:"mediaFiles"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
	Total      int64      `json:"total"`
}

// SettingsDTO is the site settings view
type SettingsDTO struct {
	ID             uint                   `json:"_id"`
	SiteName       string                 `json:"siteName"`
	LogoURL        string                 `json:"logoUrl"`
	AboutUsContent string                 `json:"aboutUsContent"`
	ContactEmail   string                 `json:"contactEmail"`
	ContactPhone   string                 `json:"contactPhone"`
	ContactAddress string                 `json:"contactAddress"`
	GoogleMapsURL  string                 `json:"googleMapsUrl"`
	PaymentMethods []models.PaymentMethod `json:"paymentMethods"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func newSettingsDTO(s *models.Settings) SettingsDTO {
	methods := []models.PaymentMethod(s.PaymentMethods)
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	return SettingsDTO{
		ID:             s.ID,
		SiteName:       s.SiteName,
		LogoURL:        s.LogoURL,
		AboutUsContent: s.AboutUsContent,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		ContactAddress: s.ContactAddress,
		GoogleMapsURL:  s.GoogleMapsURL,
		PaymentMethods: methods,
		UpdatedAt:      s.UpdatedAt,
	}
}

// CSSRuleDTO is the full custom CSS rule view
type CSSRuleDTO struct {
	ID        uint      `json:"_id"`
	Path      string    `json:"path"`
	CSS       string    `json:"css"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCSSRuleDTO(r *models.CustomCSS) CSSRuleDTO {
	return CSSRuleDTO{
		ID:        r.ID,
		Path:      r.Path,
		CSS:       r.CSS,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PublicCSSRuleDTO exposes only what the storefront needs to apply a rule
type PublicCSSRuleDTO struct {
	Path string `json:"path"`
	CSS  string `json:"css"`
}

// totalPages computes ceil(total/pageSize)
func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
