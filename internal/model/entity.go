package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

type SupportType string

const (
	SupportRemote      SupportType = "remote"
	SupportTelephonic  SupportType = "telephonic"
	SupportOnsiteVisit SupportType = "onsite_visit"
	SupportOther       SupportType = "other"
)

type User struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"not null" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"index;not null" json:"email"`
	Role          Role      `gorm:"type:varchar(16);not null;default:user" json:"role"`
	CompanyName   string    `json:"companyName,omitempty"`
	Department    string    `json:"department,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Designation   string    `json:"designation,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Category struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"index;not null" json:"name"`
	ParentID *int64 `gorm:"index" json:"parentId"`
}

type Ticket struct {
	ID                int64          `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Status            TicketStatus   `gorm:"type:varchar(32);index;not null;default:open" json:"status"`
	Priority          TicketPriority `gorm:"type:varchar(16);index;not null;default:medium" json:"priority"`
	SupportType       SupportType    `gorm:"type:varchar(32);not null;default:remote" json:"supportType"`
	ContactEmail      string         `json:"contactEmail,omitempty"`
	ContactName       string         `json:"contactName,omitempty"`
	ContactPhone      string         `json:"contactPhone,omitempty"`
	ContactDepartment string         `json:"contactDepartment,omitempty"`
	CategoryID        int64          `gorm:"index;not null" json:"categoryId"`
	SubcategoryID     *int64         `gorm:"index" json:"subcategoryId"`
	CreatedByID       int64          `gorm:"index;not null" json:"createdById"`
	AssignedToID      *int64         `gorm:"index" json:"assignedToId"`
	DueDate           *time.Time     `json:"dueDate"`
	AttachmentURL     string         `json:"attachmentUrl,omitempty"`
	AttachmentName    string         `json:"attachmentName,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`

	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Category `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	AssignedTo  *User     `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}

// Code is the display code shown in the UI and matched by free-text search.
func (t *Ticket) Code() string {
	return TicketCode(t.ID)
}

type Comment struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TicketID   int64     `gorm:"index;not null" json:"ticketId"`
	UserID     int64     `gorm:"index;not null" json:"userId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsInternal bool      `gorm:"not null;default:false" json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Faq struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CategoryID *int64    `gorm:"index" json:"categoryId"`
	ViewCount  int64     `gorm:"not null;default:0" json:"viewCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
