package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/clock"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"
	"github.com/juanmzaragoza/billing-dad-project/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := infra.NewDatabase(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := infra.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
			return nil
		},
	}
}

func newSeedUserCmd() *cobra.Command {
	var req dto.GuardarUsuarioRequest
	var email string

	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Create an operator or reset an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email = strings.TrimSpace(email); email != "" {
				req.Email = &email
			}
			if err := validator.New().Struct(req); err != nil {
				return fmt.Errorf("datos de usuario inválidos: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := infra.NewDatabase(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			svc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
			u, err := svc.GuardarUsuario(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s (%s) guardado con id %s\n", u.Username, u.Rol, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "optional email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&req.Rol, "rol", "operador", "administrador | operador")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(h))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard summary as JSON, bypassing the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := infra.NewDatabase(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			svc := service.NewDashboardService(
				repository.NewFacturaRepository(db),
				repository.NewOrdenCompraRepository(db),
				nil, 0, clock.Real{},
			)
			return imprimirJSON(cmd, svc.Resumen(cmd.Context()))
		},
	}
}

func newDLQCmd() *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "List failed document deliveries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New("--limit debe ser positivo")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rdb, err := infra.NewRedis(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer rdb.Close()

			total, err := worker.DLQLength(cmd.Context(), rdb, worker.QueueEnvios)
			if err != nil {
				return err
			}
			entries, err := worker.DLQEntries(cmd.Context(), rdb, worker.QueueEnvios, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d envíos fallidos\n", total)
			return imprimirJSON(cmd, entries)
		},
	}
	cmd.Flags().Int64Var(&limit, "limit", 20, "entries to show, newest first")
	return cmd
}

func imprimirJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
