package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expertbridge/internal/database"
	"expertbridge/internal/domain"
	"expertbridge/internal/middleware"
	"expertbridge/internal/modules/directory"
	"expertbridge/internal/modules/profile"
	"expertbridge/internal/pkg/jwt"
	"expertbridge/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalMakesExpertVisible(t *testing.T) {
	db, err := database.Connect("file:admin_approval_flow?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	profiles := repository.NewProfileRepository(db)
	experts := repository.NewExpertRepository(db)
	seekers := repository.NewSeekerRepository(db)
	bookings := repository.NewBookingRepository(db)
	admins := repository.NewAdminRepository(db)

	resolver := profile.NewService(profiles, experts, seekers, admins)
	adminSvc := NewService(profiles, experts, bookings, resolver, nil, nil)
	dir := directory.NewService(experts, profiles, bookings)

	boss := &domain.Profile{Email: "boss@example.com", PasswordHash: "x", FullName: "Boss", Role: domain.RoleNGO, Status: domain.StatusApproved}
	require.NoError(t, profiles.CreateAccount(ctx, boss, nil, &domain.SeekerProfile{OrganizationName: "Admin Org", OrganizationType: domain.OrgNGO}))
	require.NoError(t, admins.Grant(ctx, boss.ID))

	applicant := &domain.Profile{Email: "p@example.com", PasswordHash: "x", FullName: "Pat", Role: domain.RoleExpert, Status: domain.StatusPendingReview, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, profiles.CreateAccount(ctx, applicant, &domain.ExpertProfile{Headline: "Supply chain lead", ExpertiseTags: []string{"Supply chain"}}, nil))

	before, err := dir.Stats(ctx)
	require.NoError(t, err)
	listed, err := dir.Search(ctx, directory.Filter{Search: "supply chain"})
	require.NoError(t, err)
	assert.Empty(t, listed)

	pending, err := adminSvc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// a non-admin cannot decide, even through the HTTP surface
	j := jwt.New("secret", time.Hour)
	r := gin.New()
	g := r.Group("/api/v1/admin", middleware.JWTAuth(j, nil), middleware.RequireAdmin(resolver))
	NewHandler(adminSvc).RegisterRoutes(g)

	applicantToken, err := j.GenerateToken(applicant.ID, string(applicant.Role))
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/experts/"+applicant.ID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+applicantToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	bossToken, err := j.GenerateToken(boss.ID, string(boss.Role))
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/experts/"+applicant.ID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+bossToken)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"approved"`)

	after, err := dir.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ApprovedExperts+1, after.ApprovedExperts)

	listed, err = dir.Search(ctx, directory.Filter{Search: "supply chain"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Pat", listed[0].FullName)

	// second decision is refused
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/experts/"+applicant.ID+"/reject", nil)
	req.Header.Set("Authorization", "Bearer "+bossToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
