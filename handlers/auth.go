package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/gridcall/api/middleware"
	"github.com/gridcall/api/models"
)

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// HashPassword validates username/password input and returns a bcrypt hash for storage.
func HashPassword(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("username is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// Signup registers a new user.
func (h *Handler) Signup(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}

	hash, err := HashPassword(creds.Username, creds.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &models.User{
		Username:  creds.Username,
		Email:     creds.Email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := h.db.NewInsert().Model(user).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "username or email already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, user)
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("username = ?", creds.Username).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	expiresAt := time.Now().AddDate(0, 0, 30)
	claims := &mw.Claims{
		UserID:   user.ID,
		Username: creds.Username,
		UserHash: mw.UserHashFromUsername(creds.Username, h.JWTKey),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"token": tokenString})
}
