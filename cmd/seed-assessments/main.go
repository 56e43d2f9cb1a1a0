package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/database"
	"github.com/stemsi/portal-backend/internal/logger"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/repository"
	"github.com/stemsi/portal-backend/internal/service"
)

const demoPassword = "portal123"

type demoMark struct {
	subject, kind string
	score, total  float64
}

// The sample sheet: Math 8/10 quiz and 40/50 final, Science 9/10 assignment.
var demoMarks = []demoMark{
	{"Math", "quiz", 8, 10},
	{"Math", "final", 40, 50},
	{"Science", "assignment", 9, 10},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)
	userService := service.NewUserService(userRepo, cfg.BcryptCost)

	// No cache and no queue: snapshots are rebuilt on the next staff write.
	results := service.NewResultService(assessmentRepo, nil, zerolog.Nop())
	assessments := service.NewAssessmentService(assessmentRepo, userRepo, results, nil, log)

	fmt.Println("=== Seeding demo users and assessments ===")

	teacher := ensureUser(ctx, userRepo, userService, "teacher1", "Demo Teacher", model.RoleTeacher)
	ensureUser(ctx, userRepo, userService, "admin1", "Demo Admin", model.RoleAdmin)
	student := ensureUser(ctx, userRepo, userService, "student1", "Demo Student", model.RoleStudent)

	existing, err := assessments.ListForStudent(ctx, student.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list assessments")
	}
	if len(existing) > 0 {
		fmt.Printf("Student %s already has %d assessments, skipping.\n", student.Username, len(existing))
	} else {
		for _, m := range demoMarks {
			score, total := m.score, m.total
			_, err := assessments.Create(ctx, teacher.ID, &model.CreateAssessmentRequest{
				StudentID: student.ID,
				Subject:   m.subject,
				Type:      m.kind,
				Score:     &score,
				Total:     &total,
			})
			if err != nil {
				log.Fatal().Err(err).Str("subject", m.subject).Msg("Failed to create assessment")
			}
		}
		fmt.Printf("Created %d assessments for %s.\n", len(demoMarks), student.Username)
	}

	view, err := results.Compute(ctx, student.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute results")
	}
	fmt.Printf("\nSeed completed! %s: total %s / %s, average %s%%, %s\n",
		student.Username,
		view.Summary.TotalScoreText(), view.Summary.TotalMaxText(),
		view.Summary.AverageText(), view.Summary.Status)
	fmt.Printf("All demo accounts use the password %q.\n", demoPassword)
}

func ensureUser(ctx context.Context, repo *repository.UserRepository, svc *service.UserService, username, name string, role model.Role) *model.User {
	u, err := repo.GetByUsername(ctx, username)
	if err == nil {
		fmt.Printf("Found %s %s (ID %d)\n", role, username, u.ID)
		return u
	}
	if !errors.Is(err, repository.ErrNotFound) {
		panic(fmt.Errorf("lookup %s: %w", username, err))
	}

	u, err = svc.Create(ctx, username, name, role, demoPassword)
	if err != nil {
		panic(fmt.Errorf("create %s: %w", username, err))
	}
	fmt.Printf("Created %s %s (ID %d)\n", role, username, u.ID)
	return u
}
