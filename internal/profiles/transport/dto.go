package transport

import "time"

type UpdateProfileRequest struct {
	FullName      *string `json:"fullName" validate:"omitempty,max=120"`
	Info          *string `json:"info" validate:"omitempty,max=500"`
	IsExternal    *bool   `json:"isExternal"`
	ControlNumber *string `json:"controlNumber" validate:"omitempty,max=30"`
	Career        *string `json:"career" validate:"omitempty,max=120"`
	Semester      *string `json:"semester" validate:"omitempty,max=20"`
}

type ProfileResponse struct {
	UserID        string    `json:"userId"`
	FullName      *string   `json:"fullName,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Role          string    `json:"role"`
	AvatarURL     *string   `json:"avatarUrl,omitempty"`
	Info          string    `json:"info"`
	IsExternal    bool      `json:"isExternal"`
	ControlNumber *string   `json:"controlNumber,omitempty"`
	Career        *string   `json:"career,omitempty"`
	Semester      *string   `json:"semester,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
