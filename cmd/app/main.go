// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/clinicguard/clinicguard/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "clinicguard",
		Usage:   "Authorization and audit service for multi-tenant clinics",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.Migrate()
				},
			},
			{
				Name:  "create-role-record",
				Usage: "Register a role record for an identity provider subject",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject-id",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Identity provider subject (UUID)",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Account email address",
					},
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Role: doctor, patient or admin",
					},
					&cli.StringFlag{
						Name:     "clinic-id",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Clinic the account belongs to (UUID)",
					},
					&cli.StringFlag{
						Name:  "doctor-id",
						Usage: "Doctor profile id (UUID, required for doctor role)",
					},
					&cli.StringFlag{
						Name:  "patient-id",
						Usage: "Patient profile id (UUID, required for patient role)",
					},
					&cli.BoolFlag{
						Name:    "approved",
						Aliases: []string{"a"},
						Value:   false,
						Usage:   "Whether a doctor's clinic approval has been granted",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateRoleRecord(
						ctx,
						cmd.String("subject-id"),
						cmd.String("email"),
						cmd.String("role"),
						cmd.String("clinic-id"),
						cmd.String("doctor-id"),
						cmd.String("patient-id"),
						cmd.Bool("approved"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "assign-doctor",
				Usage: "Create an active doctor-patient assignment",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "doctor-id",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Doctor profile id (UUID)",
					},
					&cli.StringFlag{
						Name:     "patient-id",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Patient profile id (UUID)",
					},
					&cli.StringFlag{
						Name:     "clinic-id",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Clinic both profiles belong to (UUID)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunAssignDoctor(
						ctx,
						cmd.String("doctor-id"),
						cmd.String("patient-id"),
						cmd.String("clinic-id"),
					)
				},
			},
			{
				Name:  "clean-audit-logs",
				Usage: "Delete audit logs older than specified days",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "days",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Delete audit logs older than this many days",
					},
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Value:   false,
						Usage:   "Show how many logs would be deleted without deleting",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.CleanAuditLogs(
						ctx,
						int(cmd.Int("days")),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
