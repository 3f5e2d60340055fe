package main

import (
	"context"
	"time"

	"expertbridge/internal/config"
	"expertbridge/internal/database"
	"expertbridge/internal/domain"
	"expertbridge/internal/pkg/logger"
	"expertbridge/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type seedAccount struct {
	profile domain.Profile
	expert  *domain.ExpertProfile
	seeker  *domain.SeekerProfile
	admin   bool
}

var accounts = []seedAccount{
	{
		profile: domain.Profile{Email: "admin@expertbridge.dev", FullName: "Platform Admin", Role: domain.RoleEntrepreneur, Status: domain.StatusApproved},
		seeker:  &domain.SeekerProfile{OrganizationName: "ExpertBridge", OrganizationType: domain.OrgStartup},
		admin:   true,
	},
	{
		profile: domain.Profile{Email: "margaret@expertbridge.dev", FullName: "Margaret Holt", Role: domain.RoleExpert, Status: domain.StatusApproved,
			Bio: "Thirty years in packaged goods, last ten as COO."},
		expert: &domain.ExpertProfile{
			Headline:        "Former COO, global consumer goods",
			Industries:      []string{"Consumer Goods", "Operations"},
			ExpertiseTags:   []string{"supply chain", "scaling", "pricing"},
			YearsExperience: 30,
			FormerCompanies: []string{"Procter & Gamble", "Unilever"},
			MeetingLink:     "https://meet.example/margaret",
		},
	},
	{
		profile: domain.Profile{Email: "raj@expertbridge.dev", FullName: "Raj Patel", Role: domain.RoleExpert, Status: domain.StatusApproved},
		expert: &domain.ExpertProfile{
			Headline:        "Retired CFO and angel investor",
			Industries:      []string{"Finance", "Technology"},
			ExpertiseTags:   []string{"fundraising", "unit economics"},
			YearsExperience: 25,
			FormerCompanies: []string{"Intel"},
		},
	},
	{
		profile: domain.Profile{Email: "lena@expertbridge.dev", FullName: "Lena Morales", Role: domain.RoleExpert, Status: domain.StatusApproved},
		expert: &domain.ExpertProfile{
			Headline:        "Nonprofit development director",
			Industries:      []string{"Non-Profit", "Education"},
			ExpertiseTags:   []string{"grant writing", "board governance"},
			YearsExperience: 18,
			FormerCompanies: []string{"Red Cross"},
			MeetingLink:     "https://meet.example/lena",
		},
	},
	{
		profile: domain.Profile{Email: "tom@expertbridge.dev", FullName: "Tom Becker", Role: domain.RoleExpert, Status: domain.StatusPendingReview},
		expert: &domain.ExpertProfile{
			Headline:        "Retail merchandising veteran",
			Industries:      []string{"Retail"},
			ExpertiseTags:   []string{"merchandising"},
			YearsExperience: 22,
			FormerCompanies: []string{"Target"},
		},
	},
	{
		profile: domain.Profile{Email: "founder@acme.dev", FullName: "Sam Rivera", Role: domain.RoleEntrepreneur, Status: domain.StatusApproved},
		seeker:  &domain.SeekerProfile{OrganizationName: "Acme Robotics", OrganizationType: domain.OrgStartup, Stage: "seed", WebsiteURL: "https://acme.dev"},
	},
	{
		profile: domain.Profile{Email: "director@helpinghands.dev", FullName: "Nora Quinn", Role: domain.RoleNGO, Status: domain.StatusApproved},
		seeker:  &domain.SeekerProfile{OrganizationName: "Helping Hands", OrganizationType: domain.OrgNGO, Description: "Food security programs"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("database migrate failed", zap.Error(err))
	}

	ctx := context.Background()
	profiles := repository.NewProfileRepository(db)
	admins := repository.NewAdminRepository(db)
	bookings := repository.NewBookingRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}

	created := map[string]seedAccount{}
	for _, a := range accounts {
		exists, err := profiles.ExistsByEmail(ctx, a.profile.Email)
		if err != nil {
			log.Fatal("lookup failed", zap.String("email", a.profile.Email), zap.Error(err))
		}
		if exists {
			log.Info("already seeded", zap.String("email", a.profile.Email))
			continue
		}

		p := a.profile
		p.PasswordHash = string(hash)
		if err := profiles.CreateAccount(ctx, &p, a.expert, a.seeker); err != nil {
			log.Fatal("create account failed", zap.String("email", p.Email), zap.Error(err))
		}
		if a.admin {
			if err := admins.Grant(ctx, p.ID); err != nil {
				log.Fatal("grant admin failed", zap.String("email", p.Email), zap.Error(err))
			}
		}
		a.profile = p
		created[p.Email] = a
		log.Info("seeded account", zap.String("email", p.Email), zap.String("role", string(p.Role)))
	}

	// a couple of sessions so dashboards are not empty
	margaret, okE := created["margaret@expertbridge.dev"]
	sam, okS := created["founder@acme.dev"]
	if okE && okS {
		tomorrow := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
		for _, b := range []domain.Booking{
			{Status: domain.BookingRequested, ScheduledAt: tomorrow, Topic: "Pricing our first product line"},
			{Status: domain.BookingConfirmed, ScheduledAt: tomorrow.Add(48 * time.Hour), Topic: "Choosing a contract manufacturer"},
			{Status: domain.BookingCompleted, ScheduledAt: tomorrow.Add(-96 * time.Hour), Topic: "Go-to-market review"},
		} {
			b.ExpertID = margaret.expert.ID
			b.SeekerID = sam.seeker.ID
			b.DurationMinutes = domain.SessionDurationMinutes
			if err := bookings.Create(ctx, &b); err != nil {
				log.Fatal("create booking failed", zap.Error(err))
			}
		}
		log.Info("seeded bookings")
	}

	log.Info("seed complete", zap.Int("accounts", len(created)), zap.String("password", seedPassword))
}
