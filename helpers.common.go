package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid access token")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix      string     = "r"
	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
	ContextOwnerEmail    ContextKey = "request.owner"
	AuthorizationHeader  string     = "Authorization"
	BearerScheme         string     = "Bearer "
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ContextRequestNumber); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeBookRequestBody is a helper function to read the content of a book creation or update request.
func DecodeBookRequestBody(r *http.Request, book *Book) error {
	if r.Body == nil {
		return errors.New("invalid book request body")
	}
	return json.NewDecoder(r.Body).Decode(book)
}

// ValidateBookRequestBody is a helper function to check if the content of a book creation
// or update request is valid. The id is never read from the body so it is not checked.
func ValidateBookRequestBody(book *Book) error {
	if len(book.Title) == 0 {
		return missingFieldError("title")
	}

	if len(book.Author) == 0 {
		return missingFieldError("author")
	}

	if len(book.Description) == 0 {
		return missingFieldError("description")
	}

	if book.Price <= 0 {
		return missingFieldError("price")
	}

	return nil
}

// DecodeSignupRequestBody is a helper function to read the content of a signup request.
func DecodeSignupRequestBody(r *http.Request, user *User) error {
	if r.Body == nil {
		return errors.New("invalid signup request body")
	}
	return json.NewDecoder(r.Body).Decode(user)
}

// ValidateSignupRequestBody is a helper function to check if the content of a signup request is valid.
func ValidateSignupRequestBody(user *User) error {
	if user.ID <= 0 {
		return missingFieldError("id")
	}

	if len(user.Email) == 0 {
		return missingFieldError("email")
	}

	if len(user.Password) == 0 {
		return missingFieldError("password")
	}

	return nil
}

// LoginRequest is the payload expected on login calls.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DecodeLoginRequestBody is a helper function to read the content of a login request.
func DecodeLoginRequestBody(r *http.Request, login *LoginRequest) error {
	if r.Body == nil {
		return errors.New("invalid login request body")
	}
	return json.NewDecoder(r.Body).Decode(login)
}

// ValidateLoginRequestBody is a helper function to check if the content of a login request is valid.
func ValidateLoginRequestBody(login *LoginRequest) error {
	if len(login.Email) == 0 {
		return missingFieldError("email")
	}

	if len(login.Password) == 0 {
		return missingFieldError("password")
	}

	return nil
}

// ParseBookID converts the path parameter into a book id.
func ParseBookID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("book id provided is not valid")
	}
	return id, nil
}

// ExtractBearerToken pulls the bearer credential from the request
// Authorization header. It returns an empty string if the header
// is absent or does not carry the bearer scheme.
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get(AuthorizationHeader)
	if !strings.HasPrefix(header, BearerScheme) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerScheme))
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
