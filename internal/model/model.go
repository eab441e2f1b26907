package model

import (
	"time"
)

const RoleLibrarian = "librarian"

// AddBooksRequest is the intake payload: a donor (new or existing),
// a batch of books and an optional certificate reference.
type AddBooksRequest struct {
	LibrarianID     int        `json:"librarian_id" validate:"required,gt=0"`
	UserData        UserData   `json:"user_data"`
	Books           []BookItem `json:"books" validate:"required,min=1,dive"`
	IsNewUser       bool       `json:"is_new_user"`
	CertificatePath string     `json:"certificate_path"`
}

type UserData struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	UID    int    `json:"u_id"`
}

type BookItem struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genre" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
	Count  int    `json:"count" validate:"required,gt=0"`
}

type AddBooksResponse struct {
	UserID           int   `json:"user_id"`
	BookIDs          []int `json:"book_ids"`
	TotalBooks       int   `json:"total_books"`
	CertificateSaved bool  `json:"certificate_saved"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Librarian struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Mobile       string    `json:"mobile" db:"mobile"`
	Role         string    `json:"role" db:"role"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type LoginResponse struct {
	User  Librarian `json:"user"`
	Token string    `json:"token"`
}

type Donor struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Mobile    string    `json:"mobile" db:"mobile"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type UploadResult struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}
