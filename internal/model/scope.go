package model

// Environment tags the running deployment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the user a request acts on behalf of.
// Every usecase and tool call receives it so data access stays scoped
// to one user.
type Scope struct {
	UserID   int64  // Telegram user ID
	ChatID   int64  // Chat to deliver replies into
	Username string // Telegram username (may be empty)
}
