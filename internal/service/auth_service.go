package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ops-collab-be/internal/config"
	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/pkg/logger"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Discord is not among x/oauth2's bundled endpoints.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordMeURL = "https://discord.com/api/v10/users/@me"

type IAuthService interface {
	GetLoginURL() string
	HandleCallback(ctx context.Context, req *dto.DiscordCallbackRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	conf       *oauth2.Config
	authCfg    config.AuthConfig
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, discordCfg config.DiscordConfig, authCfg config.AuthConfig, log logger.ILogger) IAuthService {
	conf := &oauth2.Config{
		ClientID:     discordCfg.ClientID,
		ClientSecret: discordCfg.ClientSecret,
		RedirectURL:  discordCfg.RedirectURL,
		Scopes:       []string{"identify", "email"},
		Endpoint:     discordEndpoint,
	}

	return &authService{
		uowFactory: uowFactory,
		conf:       conf,
		authCfg:    authCfg,
		logger:     log,
	}
}

// Login has no server-side session to pin a state nonce to, so the
// state is a short-lived signed token verified again on callback.
const stateTTL = 10 * time.Minute

func (s *authService) newStateToken() string {
	nonce := make([]byte, 16)
	rand.Read(nonce)
	claims := jwt.MapClaims{
		"purpose": "oauth_state",
		"nonce":   base64.RawURLEncoding.EncodeToString(nonce),
		"exp":     time.Now().Add(stateTTL).Unix(),
	}
	state, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.authCfg.JwtSecret))
	return state
}

func (s *authService) verifyStateToken(state string) error {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.authCfg.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return serverutils.NewAppError(400, "invalid oauth state")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "oauth_state" {
		return serverutils.NewAppError(400, "invalid oauth state")
	}
	return nil
}

func (s *authService) GetLoginURL() string {
	return s.conf.AuthCodeURL(s.newStateToken())
}

func (s *authService) HandleCallback(ctx context.Context, req *dto.DiscordCallbackRequest) (*dto.LoginResponse, error) {
	if err := s.verifyStateToken(req.State); err != nil {
		return nil, err
	}

	token, err := s.conf.Exchange(ctx, req.Code)
	if err != nil {
		return nil, serverutils.WrapAppError(401, "discord code exchange failed", err)
	}

	discordUser, err := s.fetchDiscordUser(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByDiscordID{DiscordID: discordUser.Id})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Id:         uuid.New(),
			DiscordId:  discordUser.Id,
			Username:   discordUser.Username,
			GlobalName: discordUser.GlobalName,
			Email:      discordUser.Email,
			AvatarURL:  discordUser.AvatarURL(),
			Role:       entity.RoleGuest,
			LastLogin:  &now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("AuthService", "New user registered", map[string]interface{}{"user_id": user.Id, "discord_id": user.DiscordId})
	} else {
		if user.Banned {
			return nil, serverutils.NewAppError(403, "account is banned")
		}
		user.Username = discordUser.Username
		user.GlobalName = discordUser.GlobalName
		user.Email = discordUser.Email
		user.AvatarURL = discordUser.AvatarURL()
		user.LastLogin = &now
		user.UpdatedAt = now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	expiresAt := now.Add(time.Duration(s.authCfg.TokenTTLHour) * time.Hour)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
	}
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := jwtToken.SignedString([]byte(s.authCfg.JwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

type discordUser struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

func (u discordUser) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.Id, u.Avatar)
}

func (s *authService) fetchDiscordUser(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	client := s.conf.Client(ctx, token)
	resp, err := client.Get(discordMeURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting discord user: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading discord response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord user fetch failed, code %d, body %s", resp.StatusCode, string(content))
	}

	var du discordUser
	if err := json.Unmarshal(content, &du); err != nil {
		return nil, err
	}
	return &du, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:         u.Id,
		DiscordId:  u.DiscordId,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		AvatarURL:  u.AvatarURL,
		Role:       string(u.Role),
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}
