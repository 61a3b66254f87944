package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plannerpad/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateUsername 在注册时用户名已存在返回
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials 在用户名或密码不匹配时返回
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrBlankCredentials 在用户名或密码为空时返回
	ErrBlankCredentials = errors.New("username and password are required")
)

// AccountService 负责账号注册与登录校验
// 用户名区分大小写，密码以 bcrypt 哈希存储

type AccountService struct {
	db *gorm.DB
}

// NewAccountService 构造 AccountService
func NewAccountService(gdb *gorm.DB) *AccountService {
	return &AccountService{db: gdb}
}

// Register 创建新账号；用户名冲突时返回 ErrDuplicateUsername
func (s *AccountService) Register(username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrBlankCredentials
	}

	var existing db.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate 校验用户名与密码，失败时统一返回 ErrInvalidCredentials
func (s *AccountService) Authenticate(username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
