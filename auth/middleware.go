package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/antonlindstrom/pgstore"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/wrappedform/wrappedform/models"
	"github.com/wrappedform/wrappedform/store"
)

var (
	Store sessions.Store
)

// InitStore picks the session backend. With a database the sessions are
// persisted through pgstore; in demo mode a cookie store is enough.
func InitStore(databaseURL, sessionKey string) {
	if databaseURL == "" {
		Store = sessions.NewCookieStore([]byte(sessionKey))
		return
	}

	pg, err := pgstore.NewPGStore(databaseURL, []byte(sessionKey))
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	Store = pg
}

func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := Store.Get(r, "session-name")
		if err != nil {
			http.Error(w, "Invalid session", http.StatusInternalServerError)
			return
		}
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID, ok := session.Values["user_id"].(uint)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SaveSession(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := Store.Get(r, "session-name")
	session.Values["authenticated"] = true
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

func ClearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, "session-name")
	session.Options.MaxAge = -1
	session.Values["authenticated"] = false
	session.Values["user_id"] = nil
	session.Save(r, w)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func CreateUser(ctx context.Context, email, name, password string) (*models.User, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     name,
		PasswordHash: hashedPassword,
	}

	if err := store.Active.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return store.Active.GetUserByEmail(ctx, email)
}
