package service

import (
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg}
}

type RegisterRequest struct {
	FullName    string      `json:"fullName" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=6"`
	Phone       string      `json:"phone"`
	ParentPhone string      `json:"parentPhone"`
	StudentCode string      `json:"studentCode"`
	Governorate string      `json:"governorate"`
	Address     string      `json:"address"`
	Age         string      `json:"age"`
	Grade       model.Grade `json:"grade" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a student account. The student code defaults to a random
// four-digit code when the form leaves it blank, as the enrollment desk does.
func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	if !req.Grade.Valid() {
		req.Grade = model.GradeFirstSec
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	studentCode := req.StudentCode
	if studentCode == "" {
		studentCode = fmt.Sprintf("%04d", 1000+rand.Intn(9000))
	}

	user := &model.User{
		FullName:          req.FullName,
		Email:             req.Email,
		Password:          string(hashed),
		Phone:             req.Phone,
		ParentPhone:       req.ParentPhone,
		StudentCode:       studentCode,
		Governorate:       req.Governorate,
		Address:           req.Address,
		Age:               req.Age,
		Grade:             req.Grade,
		Role:              model.Student,
		Level:             model.LevelAverage,
		LoginCount:        1,
		CompletedLectures: model.StringSet{},
		UnlockedCourses:   model.StringSet{},
		LastLogin:         time.Now(),
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates a user. Blocked accounts are rejected before the
// password is even checked; successful logins bump the login counter.
func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredential
		}
		return nil, err
	}

	if user.IsBlocked {
		return nil, util.ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredential
	}

	user.LoginCount++
	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
