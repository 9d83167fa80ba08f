package dto

// LoginRequest represents sign-in credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@englishclub.edu"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse carries the issued token and the signed-in profile
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// UserResponse represents a dashboard profile
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleType  string `json:"roleType" enums:"ADMIN,SECRETARY,TEACHER,PARENT"`
}

// RegisterRequest represents staff profile creation data
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	RoleType  string `json:"roleType" binding:"required" enums:"ADMIN,SECRETARY,TEACHER,PARENT"`
}
