package model

import "time"

// User represents a registered user
type User struct {
	ID                int       `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	Name              string    `json:"name" db:"name"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	Country           string    `json:"country" db:"country"`
	InvestmentGoals   string    `json:"investmentGoals" db:"investment_goals"`
	RiskTolerance     string    `json:"riskTolerance" db:"risk_tolerance"`
	PreferredIndustry string    `json:"preferredIndustry" db:"preferred_industry"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8,max=128"`
	Name              string `json:"name" binding:"required"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// UserCreatedEvent is published to Kafka when a user registers and consumed
// by the welcome-email pipeline
type UserCreatedEvent struct {
	UserID            int    `json:"userId"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}
