package service

import (
	"github.com/sirupsen/logrus"

	"SafeCampus/internal/config"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/redis"
)

type EmailService struct {
	emailCfg config.SMTPConfig
	rds      *redis.EmailRepository
	log      *logrus.Entry
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		emailCfg: cfg,
		rds:      &redis.EmailRepository{},
		log:      logrus.WithField("component", "email"),
	}
}

func scopeSubject(scope string) string {
	if scope == redis.ScopeReset {
		return "Password Reset"
	}
	return "Email Verification"
}

// SendCode generates a 6-digit code, stores it pending, mails it, then
// promotes it to confirmed. The pending key is dropped when delivery or
// promotion fails so a code the user never received can't be used.
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return pkg.Internal(err)
	}
	if err = s.rds.SetCodePending(scope, email, code); err != nil {
		return pkg.Internal(err)
	}

	subject := scopeSubject(scope)
	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject+" Code", html); err != nil {
		_ = s.rds.DeleteCodePending(scope, email)
		s.log.WithError(err).WithField("scope", scope).Warn("otp mail failed")
		return pkg.Internal(err)
	}

	if err = s.rds.ConfirmCode(scope, email); err != nil {
		_ = s.rds.DeleteCodePending(scope, email)
		return pkg.Internal(err)
	}
	return nil
}

// VerifyCode checks the submitted code against the confirmed key and burns
// it on success so it is single-use.
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmedCode(scope, email)
	if err != nil {
		// absent or expired
		return false, nil
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmedCode(scope, email); err != nil {
		return false, pkg.Internal(err)
	}
	return true, nil
}
