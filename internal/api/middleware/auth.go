package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgStaffOnly    = "доступно только администраторам"
)

var (
	ErrMissingToken = errors.New("auth: token is missing")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims JWT-утверждения, выданные провайдером идентификации
type Claims struct {
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// Authenticator проверяет HS256-токены
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Parse проверяет токен и возвращает пользователя
func (a *Authenticator) Parse(tokenString string) (domain.Principal, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return domain.Principal{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		UserID:  userID,
		Email:   claims.Email,
		IsStaff: claims.IsStaff,
	}, nil
}

// Issue выпускает токен для пользователя (используется в тестах и локальной разработке)
func (a *Authenticator) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   p.Email,
		IsStaff: p.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Auth проверяет токен из заголовка Authorization или параметра ?token= (для WebSocket в браузере)
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		principal, err := a.Parse(token)
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireStaff пропускает только администраторов; ставится после Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !principal.IsStaff {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
