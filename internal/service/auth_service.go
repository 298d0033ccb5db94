package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/model"
	"github.com/bneller/littlesteps2/internal/repository"
	"github.com/bneller/littlesteps2/pkg/jwt"
	"github.com/bneller/littlesteps2/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrAuthInvalidCredentials = errors.New("用户名或密码错误")
	ErrAuthUserNotFound       = errors.New("管理员不存在")
	ErrAuthInvalidToken       = errors.New("token 无效或已过期")
)

// AuthService 管理员认证业务接口
type AuthService interface {
	// Login 用户名密码登录，返回 Access/Refresh Token 对
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// RefreshToken 用 Refresh Token 换取新 Token 对
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将当前 Token 的 jti 加入黑名单直至过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// GetCurrentUser 获取当前管理员信息
	GetCurrentUser(ctx context.Context, userID string) (*dto.AdminUserResponse, error)
	// Bootstrap 管理员表为空时用配置中的初始账号建档
	Bootstrap(ctx context.Context, username, password string) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // 可为 nil：黑名单降级不可用
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.AdminUser.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}

	return s.issueTokens(user, req.RememberMe)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrAuthInvalidToken
	}

	// 黑名单中的 Refresh Token 不可再用
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单检查失败，降级放行", zap.Error(err))
		} else if blacklisted {
			return nil, ErrAuthInvalidToken
		}
	}

	user, err := s.repo.AdminUser.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthUserNotFound
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	return s.issueTokens(user, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，Token 黑名单未生效")
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.AdminUserResponse, error) {
	var id uint
	if _, err := fmt.Sscanf(userID, "%d", &id); err != nil {
		return nil, ErrAuthUserNotFound
	}

	user, err := s.repo.AdminUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthUserNotFound
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	return &dto.AdminUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}, nil
}

// ────────────────────── Bootstrap ──────────────────────

func (s *authService) Bootstrap(ctx context.Context, username, password string) error {
	n, err := s.repo.AdminUser.Count(ctx)
	if err != nil {
		return fmt.Errorf("统计管理员数量失败: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}

	user := &model.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
	}
	if err := s.repo.AdminUser.Create(ctx, user); err != nil {
		return fmt.Errorf("创建初始管理员失败: %w", err)
	}

	s.logger.Info("已创建初始管理员", zap.String("username", username))
	return nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(user *model.AdminUser, rememberMe bool) (*dto.TokenResponse, error) {
	userID := fmt.Sprintf("%d", user.ID)

	accessToken, err := s.jwtMgr.GenerateAccessToken(userID, user.Username)
	if err != nil {
		s.logger.Error("生成 Access Token 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(userID, user.Username, rememberMe)
	if err != nil {
		s.logger.Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtMgr.AccessTokenTTL().Seconds()),
	}, nil
}
