package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthlink/internal/converter"
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/domain/repository"
	"healthlink/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists         = errors.New("email already exists")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenRevoked               = errors.New("token has been revoked")
	ErrUserNotFound               = errors.New("user not found")
	ErrRoleNotFound               = errors.New("role not found")
	ErrMedicalRecordAlreadyExists = errors.New("medical record number already exists")
	ErrLicenseAlreadyExists       = errors.New("license number already exists")
	ErrInvalidDateFormat          = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterPractitioner(ctx context.Context, req *dto.RegisterPractitionerRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	roleRepo         repository.RoleRepository
	practitionerRepo repository.PractitionerProfileRepository
	patientRepo      repository.PatientProfileRepository
	jwtService       *jwt.JWTService
	redisClient      *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	practitionerRepo repository.PractitionerProfileRepository,
	patientRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		jwtService:       jwtService,
		redisClient:      redisClient,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	isActive := true
	user := &entity.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
		IsActive: &isActive,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			if isForeignKeyError(err, "role") {
				return ErrRoleNotFound
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		profile := &entity.PatientProfile{
			UserID:          user.ID,
			MedicalRecordNo: req.MedicalRecordNo,
			PhoneNumber:     req.PhoneNumber,
			DateOfBirth:     dob,
			Gender:          req.Gender,
			Address:         req.Address,
			InsuranceNumber: req.InsuranceNumber,
		}

		if err := u.patientRepo.Create(tx, profile); err != nil {
			if isDuplicateKeyError(err, "medical_record_no") {
				return ErrMedicalRecordAlreadyExists
			}
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RolePatient,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (u *authUsecase) RegisterPractitioner(ctx context.Context, req *dto.RegisterPractitionerRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	isActive := true
	user := &entity.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDPractitioner,
		IsActive: &isActive,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			if isForeignKeyError(err, "role") {
				return ErrRoleNotFound
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		profile := &entity.PractitionerProfile{
			UserID:         user.ID,
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
			Biography:      req.Biography,
		}

		if err := u.practitionerRepo.Create(tx, profile); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create practitioner profile: %+v", err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RolePractitioner,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:*:%s", accessTokenID),
		fmt.Sprintf("refresh_token:*:%s", refreshTokenID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.RoleID)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	name := roleName(user.RoleID)
	if role != nil {
		name = role.RoleName
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.PractitionerProfile != nil {
		response.PractitionerProfile = converter.PractitionerProfileToResponse(user.PractitionerProfile)
	}
	if user.PatientProfile != nil {
		response.PatientProfile = converter.PatientProfileToResponse(user.PatientProfile)
	}

	return response, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, roleID int) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, roleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, roleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func roleName(roleID int) string {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.RoleAdmin
	case entity.RoleIDPractitioner:
		return entity.RolePractitioner
	case entity.RoleIDPatient:
		return entity.RolePatient
	default:
		return ""
	}
}

// isDuplicateKeyError checks for a PostgreSQL unique violation on the
// named constraint.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks for a PostgreSQL foreign key violation on the
// named constraint.
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
