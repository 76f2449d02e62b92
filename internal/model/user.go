package model

// User is a registered alumni portal account.
type User struct {
	Base
	FullName     string `db:"full_name" json:"full_name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	GradYear     string `db:"grad_year" json:"grad_year,omitempty"`
	CareerField  string `db:"career_field" json:"career_field,omitempty"`
}
