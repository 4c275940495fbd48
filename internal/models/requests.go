package models

import (
	"time"

	"github.com/google/uuid"
)

// API request/response DTOs

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	CompanyName string `json:"companyName" binding:"required"`
	PlanSlug    string `json:"planSlug"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    struct {
		ID       uuid.UUID `json:"id"`
		Name     string    `json:"name"`
		Email    string    `json:"email"`
		Company  string    `json:"company"`
		Slug     string    `json:"slug"`
		PlanSlug string    `json:"planSlug"`
	} `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID                 uuid.UUID          `json:"id"`
		Name               string             `json:"name"`
		Email              string             `json:"email"`
		Company            string             `json:"company"`
		Slug               string             `json:"slug"`
		Role               Role               `json:"role"`
		SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
		PlanSlug           string             `json:"planSlug"`
	} `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type PublicAppointmentRequest struct {
	CompanyID      uuid.UUID  `json:"companyId" binding:"required"`
	ServiceID      uuid.UUID  `json:"serviceId" binding:"required"`
	ProfessionalID *uuid.UUID `json:"professionalId"`
	Date           time.Time  `json:"date" binding:"required"`
	ClientName     string     `json:"clientName" binding:"required"`
	ClientPhone    string     `json:"clientPhone"`
	Notes          string     `json:"notes"`
}

type InternalAppointmentRequest struct {
	ServiceID      uuid.UUID  `json:"serviceId" binding:"required"`
	ProfessionalID *uuid.UUID `json:"professionalId"`
	Date           time.Time  `json:"date" binding:"required"`
	ClientName     string     `json:"clientName" binding:"required"`
	ClientPhone    string     `json:"clientPhone"`
	Notes          string     `json:"notes"`
}

type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type UpdateSettingsRequest struct {
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Address      string        `json:"address"`
	Description  string        `json:"description"`
	LogoURL      string        `json:"logoUrl"`
	Whatsapp     string        `json:"whatsapp"`
	OpeningTime  string        `json:"openingTime"`
	ClosingTime  string        `json:"closingTime"`
	WorkDays     string        `json:"workDays"`
	WorkSchedule []DaySchedule `json:"workSchedule"`
}

type CreateServiceRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Duration   int     `json:"duration" binding:"required"`
	BufferTime int     `json:"bufferTime"`
}

type AddMemberRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	CanViewFinancials bool   `json:"canViewFinancials"`
	CanManageAgenda   bool   `json:"canManageAgenda"`
}

type UpdateMemberRequest struct {
	CanViewFinancials *bool `json:"canViewFinancials"`
	CanManageAgenda   *bool `json:"canManageAgenda"`
}

type AddExpenseRequest struct {
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
}

type CreateReviewRequest struct {
	CompanyID    uuid.UUID `json:"companyId" binding:"required"`
	Rating       int       `json:"rating" binding:"required"`
	Comment      string    `json:"comment"`
	CustomerName string    `json:"customerName"`
}

type JoinWaitingListRequest struct {
	CompanyID    uuid.UUID `json:"companyId" binding:"required"`
	CustomerName string    `json:"customerName" binding:"required"`
	Phone        string    `json:"phone" binding:"required"`
	ServiceName  string    `json:"serviceName"`
	Notes        string    `json:"notes"`
}

// PublicCompany is the catalog projection. Rating fields are nil unless the
// company's plan exposes reviews.
type PublicCompany struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	LogoURL       string    `json:"logoUrl,omitempty"`
	Address       string    `json:"address,omitempty"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	OpeningTime   string    `json:"openingTime"`
	ClosingTime   string    `json:"closingTime"`
	AverageRating *float64  `json:"averageRating"`
	TotalReviews  *int      `json:"totalReviews"`
}
