package constant

const (
	DefaultUserType  = "User"
	DefaultTokenType = "Bearer"
)
