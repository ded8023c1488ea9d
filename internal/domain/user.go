package domain

import "time"

// Role distinguishes car owners from drivers.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleDriver Role = "driver"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleDriver
}

// CarDetails describes an owner's car.
type CarDetails struct {
	Model  string
	Number string
	Color  string
	Year   int
}

// User is a registered account, either an owner or a driver.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	City         string
	Location     *Location // last known position, nil until reported
	Car          *CarDetails
	CreatedAt    time.Time
	LastLoginAt  time.Time
}
