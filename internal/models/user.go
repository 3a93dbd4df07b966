package models

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    string
}

const RoleAdmin = "admin"
