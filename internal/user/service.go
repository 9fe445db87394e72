package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	accessTokenDuration  = time.Minute * 15
	refreshTokenDuration = time.Hour * 24 * 7
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService interface {
	GoogleLogin(ctx context.Context, code string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetUser(ctx context.Context) (*User, error)
}

type userService struct {
	repo        UserRepository
	oauthConfig *oauth2.Config
}

func NewService(repo UserRepository) UserService {
	return &userService{
		repo: repo,
		oauthConfig: &oauth2.Config{
			ClientID:     config.GetEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: config.GetEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  config.GetEnv("GOOGLE_REDIRECT_URL", ""),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*User, *TokenPair, error) {
	log := config.WithContext(ctx)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Failed to exchange Google authorization code")
		return nil, nil, ErrUnauthorized
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, nil, err
	}

	u, err := s.repo.FindByEmail(info.Email)
	if err != nil {
		return nil, nil, err
	}
	providerToken := ""
	if token.RefreshToken != "" {
		providerToken, err = config.Encrypt(token.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt provider token")
			return nil, nil, err
		}
	}

	if u == nil {
		u = &User{
			ID:            uuid.New(),
			Name:          info.Name,
			Email:         info.Email,
			AvatarURL:     info.Picture,
			Provider:      "google",
			ProviderToken: providerToken,
			Role:          "learner",
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user")
			return nil, nil, err
		}
		log.WithField("user_id", u.ID).Info("New user registered via Google")
	} else {
		u.Name = info.Name
		u.AvatarURL = info.Picture
		if providerToken != "" {
			u.ProviderToken = providerToken
		}
		if err := s.repo.Update(u); err != nil {
			log.WithError(err).Warn("Failed to refresh user profile data")
		}
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Invalid refresh token")
		return nil, ErrUnauthorized
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return s.issueTokens(u)
}

func (s *userService) GetUser(ctx context.Context) (*User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, accessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), u.Role, refreshTokenDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorized
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google user info has no email")
	}
	return &info, nil
}
