package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/seed"
)

func runMigrate(ctx context.Context, env *environment) error {
	color.Cyan("Applying migrations from %s", env.cfg.Database.MigrationsDir)
	if err := bootstrap.RunMigrations(ctx, env.database, env.cfg.Database.MigrationsDir, env.logger); err != nil {
		return err
	}
	color.Green("Migrations complete")
	return nil
}

func runSeed(ctx context.Context, env *environment) error {
	svc := env.deps.Services
	err := seed.CreateDefaultData(ctx, seed.Services{
		Auth:        svc.Auth,
		Program:     svc.Program,
		Course:      svc.Course,
		Coordinator: svc.Coordinator,
	}, env.logger)
	if err != nil {
		return err
	}
	color.Green("Seed data ready")
	color.Yellow("Dean login: %s / %s", seed.DeanEmail, seed.DefaultPassword)
	color.Yellow("Applicant login: %s / %s", seed.ApplicantEmail, seed.DefaultPassword)
	return nil
}

func runInbox(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("inbox", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status (submitted, accepted, rejected)")
	programID := fs.Int64("program", 0, "filter by program id")
	search := fs.String("search", "", "search applicant name or reference code")
	oldest := fs.Bool("oldest", false, "list oldest applications first")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := models.AdminApplicationFilter{Sort: models.SortCreatedAtDesc}
	if *oldest {
		filter.Sort = models.SortCreatedAtAsc
	}
	if *status != "" {
		s := models.ApplicationStatus(strings.ToLower(*status))
		if s != models.StatusSubmitted && !s.IsFinal() {
			return fmt.Errorf("unknown status %q", *status)
		}
		filter.Status = &s
	}
	if *programID > 0 {
		filter.ProgramID = programID
	}
	if strings.TrimSpace(*search) != "" {
		filter.Search = search
	}

	result, err := env.deps.Services.AdminApplication.ListApplications(ctx, filter, *page, *limit)
	if err != nil {
		return err
	}

	color.Cyan("Applications (page %d, %d total)", result.Page, result.Total)
	if len(result.Items) == 0 {
		color.Yellow("No applications match")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Status", "Reference", "Applicant", "Program", "Submitted"})
	for _, item := range result.Items {
		table.Append([]string{
			strconv.FormatInt(item.ID, 10),
			string(item.Status),
			item.Applicant.ReferenceCode,
			item.Applicant.FirstName + " " + item.Applicant.LastName,
			item.Program.Name,
			item.CreatedAt.Format(time.DateTime),
		})
	}
	table.Render()
	return nil
}

func runReview(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	id := fs.Int64("id", 0, "application id")
	decision := fs.String("decision", "", "accept or reject")
	deanEmail := fs.String("dean", "", "email of the reviewing dean")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || *deanEmail == "" {
		return errors.New("review needs -id and -dean")
	}

	var target models.ApplicationStatus
	switch strings.ToLower(*decision) {
	case "accept":
		target = models.StatusAccepted
	case "reject":
		target = models.StatusRejected
	default:
		return fmt.Errorf("decision must be accept or reject, got %q", *decision)
	}

	dean, err := env.repos.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*deanEmail)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("no user with email %s", *deanEmail)
		}
		return err
	}
	if dean.Role != models.RoleDean {
		return fmt.Errorf("%s is not a dean", dean.Email)
	}

	review, err := env.deps.Services.AdminApplication.ReviewApplication(ctx, *id, dean.ID, target)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Status", "Reviewed By", "Reviewed At"})
	table.Append([]string{
		strconv.FormatInt(review.ID, 10),
		string(review.Status),
		strconv.FormatInt(review.ReviewedBy, 10),
		review.ReviewedAt.Format(time.DateTime),
	})
	table.Render()
	color.Green("Application %d %s", review.ID, review.Status)
	return nil
}
