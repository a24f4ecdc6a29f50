package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-report-api/internal/config"
	"github.com/jwalitptl/clinic-report-api/internal/model"
	"github.com/jwalitptl/clinic-report-api/internal/repository/postgres"
	reportService "github.com/jwalitptl/clinic-report-api/internal/service/report"
	"github.com/jwalitptl/clinic-report-api/pkg/auth"
	"github.com/jwalitptl/clinic-report-api/pkg/client"
	"github.com/jwalitptl/clinic-report-api/pkg/logger"
	"github.com/jwalitptl/clinic-report-api/pkg/metrics"
)

type reportFlags struct {
	start, end string
	doctorID   string
	patientID  string
	status     string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day of the report (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of the report (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.doctorID, "doctor", "", "only appointments of this doctor id")
	cmd.Flags().StringVar(&f.patientID, "patient", "", "only appointments of this patient id")
	cmd.Flags().StringVar(&f.status, "status", "", "only appointments with this status")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *reportFlags) filters() (reportService.Filters, error) {
	filters := reportService.Filters{Status: model.AppointmentStatus(f.status)}
	var err error
	if f.doctorID != "" {
		if filters.DoctorID, err = uuid.Parse(f.doctorID); err != nil {
			return filters, fmt.Errorf("invalid --doctor %q: %w", f.doctorID, err)
		}
	}
	if f.patientID != "" {
		if filters.PatientID, err = uuid.Parse(f.patientID); err != nil {
			return filters, fmt.Errorf("invalid --patient %q: %w", f.patientID, err)
		}
	}
	return filters, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path)
}

// revenueCmd computes a report directly against the database.
func revenueCmd() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Compute the revenue detail report from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			filters, err := flags.filters()
			if err != nil {
				return err
			}
			location, err := cfg.Report.Location()
			if err != nil {
				return err
			}

			db, err := postgres.NewDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			log := logger.NewLogger(&logger.Config{
				Level:      logger.ParseLevel(cfg.Log.Level),
				TimeFormat: time.RFC3339,
				Output:     cmd.ErrOrStderr(),
			})
			svc := reportService.NewService(
				postgres.NewAppointmentRepository(db),
				postgres.NewMedicalRecordRepository(db),
				postgres.NewMedicineRepository(db),
				metrics.New("reportctl"),
				log,
				reportService.Options{Location: location, MaxConcurrency: cfg.Report.MaxConcurrency},
			)

			period, err := svc.ParseDateRange(flags.start, flags.end)
			if err != nil {
				return err
			}
			report, err := svc.GenerateRevenueReport(cmd.Context(), period, filters)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd)
	return cmd
}

// remoteCmd fetches a report through the REST API.
func remoteCmd() *cobra.Command {
	var (
		flags   reportFlags
		baseURL string
		token   string
	)
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Fetch the revenue detail report from a running API",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := flags.filters()
			if err != nil {
				return err
			}
			start, err := time.Parse("2006-01-02", flags.start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: %w", flags.start, err)
			}
			end, err := time.Parse("2006-01-02", flags.end)
			if err != nil {
				return fmt.Errorf("invalid --end %q: %w", flags.end, err)
			}

			c := client.New(baseURL, client.WithTokenSource(func() string { return token }))
			if health := c.Health(cmd.Context()); !health.Success {
				return fmt.Errorf("api is not healthy: %s", health.Error)
			}

			report, res := c.RevenueReport(cmd.Context(), client.ReportQuery{
				StartDate: start,
				EndDate:   end,
				DoctorID:  filters.DoctorID,
				PatientID: filters.PatientID,
				Status:    flags.status,
			})
			if !res.Success {
				return fmt.Errorf("report request failed: %s", res.Error)
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&baseURL, "url", client.DefaultBaseURL, "API base URL")
	cmd.Flags().StringVar(&token, "token", os.Getenv("CLINIC_TOKEN"), "bearer token")
	return cmd
}

// tokenCmd signs an access token with the configured secret.
func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the report API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jwtSvc, err := auth.NewJWTService(cfg.Auth.JWTSecret, "")
			if err != nil {
				return err
			}
			token, err := jwtSvc.GenerateAccessToken(userID, role, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "reportctl", "user id claim")
	cmd.Flags().StringVar(&role, "role", "admin", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
