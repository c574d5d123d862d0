package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	SessionCookieName = "intern_session"
)

// Field constraints
const (
	MaxUsernameLength    = 20
	MaxEmailLength       = 50
	MaxTaskTitleLength   = 250
	MaxDescriptionLength = 250
	MinPasswordLength    = 8
)

// TokenKeyBytes is the number of random bytes in a token key (hex encoded to 40 chars).
const TokenKeyBytes = 20
