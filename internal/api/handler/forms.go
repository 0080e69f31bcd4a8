package handler

// Form types bound from page submissions. Validation tags are enforced by
// the echo validator before any upstream call is made, so obvious mistakes
// never leave the dashboard.

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type signupForm struct {
	FullName  string `form:"full_name"  validate:"required,min=2,max=255"`
	Email     string `form:"email"      validate:"required,email"`
	Phone     string `form:"phone"      validate:"required,min=10,max=20"`
	Password  string `form:"password"   validate:"required,min=8"`
	SocietyID string `form:"society_id"`
}

type forgotPasswordForm struct {
	Email string `form:"email" validate:"required,email"`
}

type resetPasswordForm struct {
	Token       string `form:"token"        validate:"required"`
	NewPassword string `form:"new_password" validate:"required,min=8"`
}

type changePasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=8"`
}

type societyForm struct {
	Name          string `form:"name"           validate:"required,min=2,max=255"`
	Address       string `form:"address"        validate:"required"`
	City          string `form:"city"           validate:"max=100"`
	State         string `form:"state"          validate:"max=100"`
	Pincode       string `form:"pincode"        validate:"max=10"`
	ContactPerson string `form:"contact_person" validate:"max=255"`
	ContactEmail  string `form:"contact_email"  validate:"omitempty,email"`
	ContactPhone  string `form:"contact_phone"  validate:"max=20"`
}

type approvalForm struct {
	Approved        bool   `form:"approved"`
	RejectionReason string `form:"rejection_reason" validate:"max=255"`
}

type userEditForm struct {
	FullName string `form:"full_name" validate:"required,min=2,max=255"`
	Email    string `form:"email"     validate:"required,email"`
	Phone    string `form:"phone"     validate:"required,min=10,max=20"`
	IsActive bool   `form:"is_active"`
}

type themeForm struct {
	Theme string `form:"theme" validate:"required,oneof=emerald ocean plum slate"`
}
