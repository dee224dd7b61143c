package config

type ServerConfig interface {
	GetJWTSecret() []byte
	GetTokenExpiresIn() string
	GetRequestsPerSecond() int
	GetAdminEmail() string
	GetAdminPassword() string
}

type Server struct{}

var _ ServerConfig = Server{}

// GetJWTSecret is the HMAC key the development backend signs tokens with.
func (Server) GetJWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "dev-only-secret-change-me"))
}

// GetTokenExpiresIn is the human readable lifetime handed to clients on login ("15m", "2h", "7d").
func (Server) GetTokenExpiresIn() string {
	return GetEnv("TOKEN_EXPIRES_IN", "8h")
}

func (Server) GetRequestsPerSecond() int {
	return GetEnvInt("REQUESTS_PER_SECOND", 20)
}

// GetAdminEmail is the login of the staff account seeded into an empty backend.
func (Server) GetAdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "admin@pg.local")
}

func (Server) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "Admin@1234")
}
