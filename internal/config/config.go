// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ProjectID selects the Firestore project. When empty the service runs
	// against the fixtures file instead.
	ProjectID string `koanf:"project_id"`

	// FixturesPath points at a JSON fixtures file for the in-memory store.
	FixturesPath string `koanf:"fixtures_path"`

	// AuthToken is the static bearer token admin requests must carry.
	AuthToken string `koanf:"auth_token" validate:"required"`

	// AdminName and AdminEmail identify the operator session.
	AdminName  string `koanf:"admin_name"`
	AdminEmail string `koanf:"admin_email" validate:"omitempty,email"`

	// JudgeEmailDomain and JudgePasswordTag drive the judge credential
	// derivation: passwords are judge emails with the domain swapped for
	// the tag.
	JudgeEmailDomain string `koanf:"judge_email_domain" validate:"required,startswith=@"`
	JudgePasswordTag string `koanf:"judge_password_tag" validate:"required,startswith=@"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		AuthToken:        "judgeboard-dev-token",
		AdminName:        "Admin",
		AdminEmail:       "admin@slts.cbe",
		JudgeEmailDomain: "@slts.cbe",
		JudgePasswordTag: "@2311pass26",
	}
}
