package request

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	FullName string  `json:"full_name" validate:"required,max=120"`
	Role     string  `json:"role" validate:"omitempty,oneof=STAFF SUPERVIZOR MANAGER DEVELOPER KASIYER"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
}

// UpdateRoleRequest clears the role when Role is empty.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"omitempty,oneof=STAFF SUPERVIZOR MANAGER DEVELOPER KASIYER"`
}
