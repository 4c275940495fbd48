package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrial    SubscriptionStatus = "TRIAL"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELLED"
)

// CanAcceptBookings reports whether customers may book this company online.
// Staff operations are not gated by subscription status.
func (s SubscriptionStatus) CanAcceptBookings() bool {
	return s == SubscriptionActive || s == SubscriptionTrial
}

type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleProfessional Role = "USER"
	RoleClient       Role = "CLIENT"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

type WaitingStatus string

const (
	WaitingListWaiting   WaitingStatus = "WAITING"
	WaitingListCancelled WaitingStatus = "CANCELLED"
)

// DaySchedule is one entry of the structured per-day operating schedule,
// serialized as JSONB. Day follows time.Weekday numbering (0=Sunday).
type DaySchedule struct {
	Day    int    `json:"day"`
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type Company struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	Category           string             `json:"category,omitempty"`
	Address            string             `json:"address,omitempty"`
	Description        string             `json:"description,omitempty"`
	LogoURL            string             `json:"logoUrl,omitempty"`
	Whatsapp           string             `json:"whatsapp,omitempty"`
	OpeningTime        string             `json:"openingTime"`
	ClosingTime        string             `json:"closingTime"`
	WorkDays           string             `json:"workDays"`
	WorkSchedule       []DaySchedule      `json:"workSchedule,omitempty"`
	PlanID             uuid.UUID          `json:"planId"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	Active             bool               `json:"active"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`

	Plan *Plan `json:"plan,omitempty"`
}

type Plan struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID                   uuid.UUID  `json:"id"`
	CompanyID            uuid.UUID  `json:"companyId"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Role                 Role       `json:"role"`
	CanViewFinancials    bool       `json:"canViewFinancials"`
	CanManageAgenda      bool       `json:"canManageAgenda"`
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type Service struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"companyId"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Duration   int       `json:"duration"`
	BufferTime int       `json:"bufferTime"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Appointment struct {
	ID             uuid.UUID         `json:"id"`
	CompanyID      uuid.UUID         `json:"companyId"`
	ServiceID      uuid.UUID         `json:"serviceId"`
	ProfessionalID *uuid.UUID        `json:"professionalId,omitempty"`
	UserID         *uuid.UUID        `json:"userId,omitempty"`
	ClientName     string            `json:"clientName"`
	ClientPhone    string            `json:"clientPhone,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Date           time.Time         `json:"date"`
	Status         AppointmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`

	Service          *Service `json:"service,omitempty"`
	ProfessionalName string   `json:"professionalName,omitempty"`
}

type Expense struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"companyId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Review struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"companyId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CustomerName string    `json:"customerName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type WaitingListEntry struct {
	ID           uuid.UUID     `json:"id"`
	CompanyID    uuid.UUID     `json:"companyId"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	ServiceName  string        `json:"serviceName"`
	Notes        string        `json:"notes,omitempty"`
	Status       WaitingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type ActivityLog struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID uuid.UUID  `json:"companyId"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Action    string     `json:"action"`
	Details   string     `json:"details"`
	CreatedAt time.Time  `json:"createdAt"`

	UserName string `json:"userName,omitempty"`
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	CreatedAt time.Time `json:"createdAt"`
}
