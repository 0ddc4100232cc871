package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
	"SafeCampus/internal/repository/redis"
)

type UserService struct {
	repo     *mysql.UserRepository
	follows  *mysql.FollowRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: mysql.DB},
		follows:  &mysql.FollowRepository{DB: mysql.DB},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

// Register creates (or refreshes) an unverified account and mails an OTP.
// Re-registering an unverified email overwrites the stale account data.
func (s *UserService) Register(ctx context.Context, email, firstname, lastname, password string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	found := err == nil
	if found && existing.IsVerified {
		return pkg.Policy("account already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}

	if found {
		existing.Firstname = firstname
		existing.Lastname = lastname
		existing.Password = string(hash)
		if err := s.repo.Save(ctx, existing); err != nil {
			return pkg.Internal(err)
		}
	} else {
		user := &model.User{
			Email:             email,
			Firstname:         firstname,
			Lastname:          lastname,
			Password:          string(hash),
			PostVisibility:    model.VisibilityEveryone,
			ProfileVisibility: model.VisibilityEveryone,
			CanBeFollowed:     true,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return pkg.Internal(err)
		}
	}

	return s.emailSvc.SendCode(redis.ScopeRegister, email)
}

// VerifyEmail marks the account verified after a correct OTP.
func (s *UserService) VerifyEmail(ctx context.Context, email, code string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeRegister, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return pkg.Invalid("invalid verification code")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("account not found")
		}
		return pkg.Internal(err)
	}
	user.IsVerified = true
	if err := s.repo.Save(ctx, user); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkg.Invalid("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Invalid("invalid email or password")
	}
	if !user.IsVerified {
		return nil, pkg.Policy("account not verified")
	}

	token, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, pkg.Internal(err)
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	if err := s.rUser.DeleteUserToken(usrID); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// Refresh rotates the pair and replaces the stored access token so the auth
// middleware accepts the new one.
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	if err = s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, pkg.Internal(err)
	}
	return pair, nil
}

// ForgotPassword mails a reset OTP to a verified account.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("account does not exist")
		}
		return pkg.Internal(err)
	}
	if !user.IsVerified {
		return pkg.Policy("account not verified")
	}
	return s.emailSvc.SendCode(redis.ScopeReset, email)
}

func (s *UserService) SetNewPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return pkg.Invalid("invalid verification code")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("account not found")
		}
		return pkg.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}
	if err = s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// ChangePassword verifies the old password, sets the new one and ends the
// current session.
func (s *UserService) ChangePassword(ctx context.Context, usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, usrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("account not found")
		}
		return pkg.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return pkg.Invalid("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return pkg.Internal(err)
	}
	if err = s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return pkg.Internal(err)
	}
	return s.Logout(usrID)
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("account not found")
		}
		return nil, pkg.Internal(err)
	}
	return user, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return users, nil
}

func (s *UserService) ListByIDs(ctx context.Context, ids []uint64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, pkg.Invalid("ids are required")
	}
	users, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return users, nil
}

// Recommended lists accounts the user does not already follow.
func (s *UserService) Recommended(ctx context.Context, usrID uint64) ([]model.User, error) {
	if _, err := s.GetUser(ctx, usrID); err != nil {
		return nil, err
	}
	following, err := s.follows.FollowingIDs(ctx, usrID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	excluded := append([]uint64{usrID}, following...)
	users, err := s.repo.ListExcluding(ctx, excluded)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return users, nil
}

// ProfileUpdate carries the mutable profile fields. Empty strings leave the
// current value untouched.
type ProfileUpdate struct {
	Firstname         string
	Lastname          string
	DisplayName       string
	Bio               string
	Gender            string
	DateOfBirth       string
	PhoneNumber       string
	Website           string
	Location          string
	PostVisibility    model.Visibility
	ProfileVisibility model.Visibility
	CanBeFollowed     *bool
}

func (s *UserService) UpdateProfile(ctx context.Context, usrID uint64, upd ProfileUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, usrID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, pkg.Policy("account not verified")
	}

	if upd.PostVisibility != "" && !upd.PostVisibility.Valid() {
		return nil, pkg.Invalid("invalid visibility option")
	}
	if upd.ProfileVisibility != "" && !upd.ProfileVisibility.Valid() {
		return nil, pkg.Invalid("invalid visibility option")
	}

	if upd.Firstname != "" {
		user.Firstname = upd.Firstname
	}
	if upd.Lastname != "" {
		user.Lastname = upd.Lastname
	}
	if upd.DisplayName != "" {
		user.DisplayName = upd.DisplayName
	}
	if upd.Bio != "" {
		user.Bio = upd.Bio
	}
	if upd.Gender != "" {
		user.Gender = upd.Gender
	}
	if upd.DateOfBirth != "" {
		user.DateOfBirth = upd.DateOfBirth
	}
	if upd.PhoneNumber != "" {
		user.PhoneNumber = upd.PhoneNumber
	}
	if upd.Website != "" {
		user.Website = upd.Website
	}
	if upd.Location != "" {
		user.Location = upd.Location
	}
	if upd.PostVisibility != "" {
		user.PostVisibility = upd.PostVisibility
	}
	if upd.ProfileVisibility != "" {
		user.ProfileVisibility = upd.ProfileVisibility
	}
	if upd.CanBeFollowed != nil {
		user.CanBeFollowed = *upd.CanBeFollowed
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkg.Internal(err)
	}
	return user, nil
}

func (s *UserService) SetProfilePhoto(ctx context.Context, usrID uint64, url string) (*model.User, error) {
	user, err := s.GetUser(ctx, usrID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = url
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkg.Internal(err)
	}
	return user, nil
}

func (s *UserService) SetCoverPhoto(ctx context.Context, usrID uint64, url string) (*model.User, error) {
	user, err := s.GetUser(ctx, usrID)
	if err != nil {
		return nil, err
	}
	user.CoverPicture = url
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkg.Internal(err)
	}
	return user, nil
}

// Delete removes the account and its session. Posts and comments by the user
// are intentionally left behind.
func (s *UserService) Delete(ctx context.Context, usrID uint64) error {
	if _, err := s.GetUser(ctx, usrID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, usrID); err != nil {
		return pkg.Internal(err)
	}
	_ = s.rUser.DeleteUserToken(usrID)
	return nil
}
