package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed users.json
var usersJSON []byte

// Role names an account category on the storefront.
type Role string

// Known roles
const (
	StandardUser          Role = "standard_user"
	LockedOutUser         Role = "locked_out_user"
	ProblemUser           Role = "problem_user"
	PerformanceGlitchUser Role = "performance_glitch_user"
	ErrorUser             Role = "error_user"
	VisualUser            Role = "visual_user"
)

// UserRecord is one entry of the user directory.
type UserRecord struct {
	Username string `json:"username"`
}

// Credentials is a username joined with the shared password.
type Credentials struct {
	Username string
	Password string
}

// Configuration errors
var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrMissingSecret = errors.New("PASSWORD is required")
)

// ErrorKind classifies a ConfigurationError.
type ErrorKind string

// Configuration error kinds
const (
	UnknownRole   ErrorKind = "unknown_role"
	MissingSecret ErrorKind = "missing_secret"
)

// ConfigurationError reports a setup problem that must never be mistaken for
// an application defect.
type ConfigurationError struct {
	Kind ErrorKind
	Role Role
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("configuration error: %v: %q", e.Err, e.Role)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Users is the immutable user directory plus the shared password.
type Users struct {
	directory map[Role]UserRecord
	password  string
}

// LoadUsers parses the embedded user directory and captures PASSWORD through
// getenv. A missing password is reported by GetUser, not here.
func LoadUsers(getenv func(string) string) (*Users, error) {
	return parseUsers(usersJSON, getenv("PASSWORD"))
}

func parseUsers(data []byte, password string) (*Users, error) {
	directory := make(map[Role]UserRecord)
	if err := json.Unmarshal(data, &directory); err != nil {
		return nil, fmt.Errorf("failed to parse user directory: %w", err)
	}
	if len(directory) == 0 {
		return nil, errors.New("user directory is empty")
	}
	for role, record := range directory {
		if record.Username == "" {
			return nil, fmt.Errorf("user directory entry %q has no username", role)
		}
	}

	return &Users{
		directory: directory,
		password:  password,
	}, nil
}

// GetUser resolves the credentials for role.
func (u *Users) GetUser(role Role) (Credentials, error) {
	record, ok := u.directory[role]
	if !ok {
		return Credentials{}, &ConfigurationError{Kind: UnknownRole, Role: role, Err: ErrUnknownRole}
	}
	if u.password == "" {
		return Credentials{}, &ConfigurationError{Kind: MissingSecret, Err: ErrMissingSecret}
	}

	return Credentials{
		Username: record.Username,
		Password: u.password,
	}, nil
}

// Has reports whether role is present in the directory.
func (u *Users) Has(role Role) bool {
	_, ok := u.directory[role]
	return ok
}

// Roles returns the directory keys in sorted order.
func (u *Users) Roles() []Role {
	roles := make([]Role, 0, len(u.directory))
	for role := range u.directory {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// RoleOf finds the role whose username is username.
func (u *Users) RoleOf(username string) (Role, bool) {
	for role, record := range u.directory {
		if record.Username == username {
			return role, true
		}
	}
	return "", false
}

// Usernames returns every configured username in role order.
func (u *Users) Usernames() []string {
	names := make([]string, 0, len(u.directory))
	for _, role := range u.Roles() {
		names = append(names, u.directory[role].Username)
	}
	return names
}

// Password returns the shared secret. It may be empty.
func (u *Users) Password() string {
	return u.password
}
