package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation types accepted by the API.
const (
	DonationTypeCash     = "cash"
	DonationTypeTransfer = "transfer"
	DonationTypeOther    = "other"
)

// Envelope lifecycle states.
const (
	EnvelopeStatusPending  = "pending"
	EnvelopeStatusReceived = "received"
	EnvelopeStatusReturned = "returned"
)

// Defaults used when a route or role is left blank.
const (
	DefaultRouteName = "ทั่วไป"     // general collection route
	DefaultRole      = "เจ้าหน้าที่" // staff
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile is the denormalized display row for a credential. It shares the
// credential's ID and may be absent even when the credential exists.
type UserProfile struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	DisplayName string     `gorm:"not null" json:"display_name"`
	Phone       string     `json:"phone"`
	Role        string     `gorm:"default:'เจ้าหน้าที่'" json:"role"` // free-text, suggested values only
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Event struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	TargetAmount float64    `gorm:"default:0" json:"target_amount"`
	EventDate    *time.Time `json:"event_date"`
	Location     string     `json:"location"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Donations []Donation `gorm:"foreignKey:EventID" json:"donations,omitempty"`
	Envelopes []Envelope `gorm:"foreignKey:EventID" json:"envelopes,omitempty"`
}

type Donation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	DonorName    string    `gorm:"not null" json:"donor_name"`
	DonorPhone   string    `json:"donor_phone"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Note         string    `gorm:"type:text" json:"note"`
	DonationType string    `gorm:"type:varchar(20);default:'cash'" json:"donation_type"` // cash|transfer|other
	IsAnonymous  bool      `gorm:"default:false" json:"is_anonymous"`
	ProcessedBy  string    `json:"processed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type Envelope struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	RouteName   string    `gorm:"default:'ทั่วไป'" json:"route_name"`
	EnvelopeNo  string    `gorm:"not null" json:"envelope_no"`
	DonorName   string    `json:"donor_name"`
	DonorPhone  string    `json:"donor_phone"`
	Amount      float64   `gorm:"default:0" json:"amount"`
	PaymentType string    `gorm:"type:varchar(20)" json:"payment_type"`             // cash|transfer|empty
	Status      string    `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending|received|returned
	Note        string    `gorm:"type:text" json:"note"`
	ProcessedBy string    `json:"processed_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Income struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	Category     string    `gorm:"not null" json:"category"`
	Description  string    `gorm:"type:text" json:"description"`
	Amount       float64   `gorm:"not null" json:"amount"`
	ReceivedDate time.Time `json:"received_date"`
	ReceiptNo    string    `json:"receipt_no"`
	ProcessedBy  string    `json:"processed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	ReceiptNo   string    `json:"receipt_no"`
	ProcessedBy string    `json:"processed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Operator struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"default:'เจ้าหน้าที่'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// EventSummary is the per-event aggregate snapshot. It is not a table; the
// event repository builds it with a single aggregate query and
// PercentReached is filled in afterwards.
type EventSummary struct {
	EventID             uuid.UUID `json:"event_id"`
	EventName           string    `json:"event_name"`
	TargetAmount        float64   `json:"target_amount"`
	IsActive            bool      `json:"is_active"`
	TotalDonated        float64   `json:"total_donated"`
	TotalDonors         int64     `json:"total_donors"`
	TotalIncome         float64   `json:"total_income"`
	TotalExpenses       float64   `json:"total_expenses"`
	TotalEnvelopes      int64     `json:"total_envelopes"`
	EnvelopesReceived   int64     `json:"envelopes_received"`
	TotalEnvelopeAmount float64   `json:"total_envelope_amount"`
	PercentReached      float64   `json:"percent_reached"`
}

// Net is the campaign's net position: everything collected minus expenses.
func (s *EventSummary) Net() float64 {
	return s.TotalDonated + s.TotalEnvelopeAmount + s.TotalIncome - s.TotalExpenses
}
