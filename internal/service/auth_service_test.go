package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
	"github.com/ignatzorin/kerjaku-backend/internal/pkg/apperror"
)

func validWorkerRegistration() RegisterInput {
	return RegisterInput{
		Name:            "Eko Saputra",
		Phone:           "0812-3456-7999",
		Password:        "rahasia1",
		PasswordConfirm: "rahasia1",
		Role:            models.RoleWorker,
		Location:        "Bogor, Jawa Barat",
		Skills:          []models.SkillCategory{models.SkillMason},
	}
}

func TestAuthService_RegisterWorkerPublishesProfile(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()
	svc := NewAuthService(reg)
	store := anonymousSession(t)

	user, err := svc.Register(ctx, store, validWorkerRegistration())
	require.NoError(t, err)

	assert.Equal(t, "6281234567999", user.Phone)
	assert.Equal(t, models.RoleWorker, user.Role)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, user.ID, store.Current().ID)

	w, err := reg.Workers.Find(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eko Saputra", w.FullName)
	assert.Equal(t, []models.SkillCategory{models.SkillMason}, w.Skills)
}

func TestAuthService_RegisterEmployerRequiresCompany(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	in := validWorkerRegistration()
	in.Role = models.RoleEmployer
	in.Skills = nil

	_, err := svc.Register(ctx, anonymousSession(t), in)
	assert.True(t, apperror.IsValidation(err))

	in.CompanyName = "CV Karya Mandiri"
	store := anonymousSession(t)
	user, err := svc.Register(ctx, store, in)
	require.NoError(t, err)
	assert.Equal(t, "CV Karya Mandiri", user.DisplayName())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"bad phone", func(in *RegisterInput) { in.Phone = "12345" }},
		{"short password", func(in *RegisterInput) { in.Password, in.PasswordConfirm = "a1", "a1" }},
		{"password mismatch", func(in *RegisterInput) { in.PasswordConfirm = "rahasia2" }},
		{"unknown role", func(in *RegisterInput) { in.Role = "admin" }},
		{"bad email", func(in *RegisterInput) { in.Email = "bukan-email" }},
		{"unknown skill", func(in *RegisterInput) { in.Skills = []models.SkillCategory{"astronaut"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validWorkerRegistration()
			tt.mutate(&in)
			store := anonymousSession(t)

			_, err := svc.Register(ctx, store, in)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
			assert.False(t, store.IsAuthenticated())
		})
	}
}

func TestAuthService_RegisterDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	in := validWorkerRegistration()
	in.Phone = "081234567801"

	_, err := svc.Register(ctx, anonymousSession(t), in)
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthService_RegisterDuplicateUnpublishedWorker(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	in := validWorkerRegistration()
	in.Skills = nil

	_, err := svc.Register(ctx, anonymousSession(t), in)
	require.NoError(t, err)

	in.Name = "Orang Lain"
	_, err = svc.Register(ctx, anonymousSession(t), in)
	assert.True(t, apperror.IsConflict(err))

	// Тот же телефон с другой ролью допустим
	in.Role = models.RoleEmployer
	in.CompanyName = "CV Eko Jaya"
	_, err = svc.Register(ctx, anonymousSession(t), in)
	assert.NoError(t, err)
}

func TestAuthService_ReloginKeepsIdentityAndApplications(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()
	auth := NewAuthService(reg)
	market := NewMarketplaceService(reg)
	store := anonymousSession(t)

	in := validWorkerRegistration()
	in.Name = "Dewi Lestari"
	in.Phone = "081299990000"
	in.Skills = nil

	registered, err := auth.Register(ctx, store, in)
	require.NoError(t, err)
	_, err = reg.Workers.Find(ctx, registered.ID)
	assert.ErrorIs(t, err, apperror.ErrRecordNotFound)

	_, err = market.ApplyToJob(ctx, store, "job-las-kanopi-bekasi", "Siap bekerja")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx, store))

	relogged, err := auth.Login(ctx, store, LoginInput{Phone: "+62 812-9999-0000", Password: "apa saja", Role: models.RoleWorker})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, relogged.ID)
	assert.Equal(t, "Dewi Lestari", relogged.Name)

	dash, err := market.WorkerDashboard(ctx, store, nil)
	require.NoError(t, err)
	require.Len(t, dash.Applications, 1)
	assert.Equal(t, "job-las-kanopi-bekasi", dash.Applications[0].JobID)
}

func TestAuthService_LoginUnknownPhoneIsStable(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	first, err := svc.Login(ctx, anonymousSession(t), LoginInput{Phone: "081399998888", Password: "x", Role: models.RoleWorker})
	require.NoError(t, err)
	second, err := svc.Login(ctx, anonymousSession(t), LoginInput{Phone: "0813-9999-8888", Password: "y", Role: models.RoleWorker})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = svc.Register(ctx, anonymousSession(t), RegisterInput{
		Name: "Eko", Phone: "081399998888", Password: "rahasia1", PasswordConfirm: "rahasia1", Role: models.RoleWorker,
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthService_LoginMatchesSeedProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())
	store := anonymousSession(t)

	user, err := svc.Login(ctx, store, LoginInput{Phone: "+62 812-3456-7801", Password: "apa saja", Role: models.RoleWorker})
	require.NoError(t, err)

	assert.Equal(t, "worker-budi-santoso", user.ID)
	assert.Equal(t, "Budi Santoso", user.Name)
	assert.True(t, store.IsAuthenticated())
}

func TestAuthService_LoginUnknownPhone(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())
	store := anonymousSession(t)

	user, err := svc.Login(ctx, store, LoginInput{Phone: "081399998888", Password: "x", Role: models.RoleEmployer})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "6281399998888", user.Name)
	assert.Equal(t, models.RoleEmployer, user.Role)
}

func TestAuthService_LoginValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())

	_, err := svc.Login(ctx, anonymousSession(t), LoginInput{Password: "x", Role: models.RoleWorker})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Login(ctx, anonymousSession(t), LoginInput{Phone: "081234567801", Role: models.RoleWorker})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Login(ctx, anonymousSession(t), LoginInput{Phone: "081234567801", Password: "x"})
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestRegistry())
	store := sessionAs(t, budiUser)

	require.NoError(t, svc.Logout(ctx, store))
	assert.False(t, store.IsAuthenticated())
}
