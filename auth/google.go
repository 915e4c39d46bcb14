package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wrappedform/wrappedform/models"
	"github.com/wrappedform/wrappedform/store"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

func GetGoogleUserInfo(token string) (*models.User, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %s", err.Error())
	}
	defer resp.Body.Close()

	var googleUser GoogleUserInfo
	if err = json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, fmt.Errorf("failed decoding user info: %s", err.Error())
	}

	user := &models.User{
		GoogleID: &googleUser.ID,
		Email:    googleUser.Email,
		FullName: googleUser.Name,
		Picture:  googleUser.Picture,
	}

	return user, nil
}

func CreateOrUpdateUser(ctx context.Context, user *models.User) error {
	existingUser, err := store.Active.GetUserByGoogleID(ctx, *user.GoogleID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to look up user: %s", err.Error())
		}
		// User doesn't exist, create new user
		if err := store.Active.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %s", err.Error())
		}
		return nil
	}

	// User exists, update information
	existingUser.FullName = user.FullName
	existingUser.Email = user.Email
	existingUser.Picture = user.Picture
	if err := store.Active.SaveUser(ctx, existingUser); err != nil {
		return fmt.Errorf("failed to update user: %s", err.Error())
	}
	*user = *existingUser // Update the user object with database values
	return nil
}
