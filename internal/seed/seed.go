// Package seed creates the data a fresh installation needs before the
// first sign-in.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/englishclub/academy/internal/app/models"
	appRepos "github.com/englishclub/academy/internal/app/repositories"
	pkgAuth "github.com/englishclub/academy/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@englishclub.edu"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default admin profile and the standard
// charge templates if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	conceptRepo := appRepos.NewPaymentConceptRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin profile --- //
	exists, err := userRepo.UserExistsByEmail(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin profile exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin profile...")

		hashedPassword, err := pkgAuth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:        defaultAdminEmail,
				PasswordHash: hashedPassword,
				FirstName:    "Academy",
				LastName:     "Admin",
				RoleType:     appModels.RoleAdmin,
			}
			if _, err := userRepo.CreateUser(ctx, admin); err != nil && !errors.Is(err, appRepos.ErrUserAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating admin profile")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin profile ready. Change the password after the first sign-in.")
			}
		}
	}

	// --- Standard charge templates --- //
	monthlyDescription := "Cuota mensual"
	enrollmentDescription := "Matrícula"
	materialsDescription := "Materiales"

	concepts := []*appModels.PaymentConcept{
		{Name: "Monthly fee", Description: &monthlyDescription, DefaultAmount: 150, IsRecurring: true, IsActive: true},
		{Name: "Enrollment", Description: &enrollmentDescription, DefaultAmount: 50, IsRecurring: false, IsActive: true},
		{Name: "Materials", Description: &materialsDescription, DefaultAmount: 35, IsRecurring: false, IsActive: true},
	}

	for _, concept := range concepts {
		if _, err := conceptRepo.CreatePaymentConcept(ctx, concept); err != nil && !errors.Is(err, appRepos.ErrPaymentConceptAlreadyExists) {
			lgr.Error().Err(err).Str("concept", concept.Name).Msg("Error creating charge template")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
