package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"
	"expertbridge/internal/pkg/jwt"
	"expertbridge/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ValidationError carries per-field messages from the sign-up payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }
func (e *ValidationError) Unwrap() error { return ErrValidation }

type Service struct {
	profiles ProfileRepository
	tokens   TokenIssuer
	revoker  Revoker
	resolver CallerResolver
	log      *zap.Logger
}

func NewService(profiles ProfileRepository, tokens TokenIssuer, revoker Revoker, resolver CallerResolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		tokens:   tokens,
		revoker:  revoker,
		resolver: resolver,
		log:      log,
	}
}

// SignUp creates the account and its role-specific sub-profile in one
// transaction and opens a session for it. Experts wait for review; seekers
// are usable at once.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	p := &domain.Profile{
		Email:     strings.ToLower(req.Email),
		FullName:  strings.TrimSpace(req.FullName),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
		Bio:       strings.TrimSpace(req.Bio),
		Role:      req.Role,
	}

	var (
		expert *domain.ExpertProfile
		seeker *domain.SeekerProfile
	)
	switch {
	case req.Role == domain.RoleExpert:
		if req.Expert == nil {
			return nil, &ValidationError{Fields: map[string]string{"expert": "required"}}
		}
		p.Status = domain.StatusPendingReview
		expert = &domain.ExpertProfile{
			Headline:        strings.TrimSpace(req.Expert.Headline),
			Industries:      cleanList(req.Expert.Industries),
			ExpertiseTags:   cleanList(req.Expert.ExpertiseTags),
			YearsExperience: req.Expert.YearsExperience,
			FormerCompanies: cleanList(req.Expert.FormerCompanies),
			LinkedInURL:     strings.TrimSpace(req.Expert.LinkedInURL),
			MeetingLink:     strings.TrimSpace(req.Expert.MeetingLink),
			Availability:    req.Expert.Availability,
		}
	case req.Role.IsSeeker():
		if req.Seeker == nil {
			return nil, &ValidationError{Fields: map[string]string{"seeker": "required"}}
		}
		p.Status = domain.StatusApproved
		seeker = &domain.SeekerProfile{
			OrganizationName: strings.TrimSpace(req.Seeker.OrganizationName),
			OrganizationType: domain.OrganizationTypeFor(req.Role),
			WebsiteURL:       strings.TrimSpace(req.Seeker.WebsiteURL),
			Stage:            strings.TrimSpace(req.Seeker.Stage),
			Description:      strings.TrimSpace(req.Seeker.Description),
		}
	default:
		return nil, &ValidationError{Fields: map[string]string{"role": "oneof"}}
	}

	if err := s.validateEmailUnique(ctx, p.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	p.PasswordHash = hash

	if err := s.profiles.CreateAccount(ctx, p, expert, seeker); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.log.Info("account created",
		zap.String("profile_id", p.ID),
		zap.String("role", string(p.Role)),
		zap.String("status", string(p.Status)))

	return s.openSession(p)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(p)
}

// SignOut revokes the session behind claims for as long as its token lives.
func (s *Service) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrUnauthorized
	}
	ttl := claims.Remaining(time.Now())
	if ttl == 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *Service) Me(ctx context.Context, profileID string) (*profile.Caller, error) {
	caller, err := s.resolver.Resolve(ctx, profileID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return caller, nil
}

func (s *Service) openSession(p *domain.Profile) (*Session, error) {
	token, err := s.tokens.GenerateToken(p.ID, string(p.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	p.PasswordHash = ""
	return &Session{Token: token, Profile: p}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.profiles.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// isUniqueViolation catches the email race the pre-check cannot: postgres
// reports 23505, sqlite a "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
