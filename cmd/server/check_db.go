package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/app"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/logging"
)

var checkDBUser string

var checkDBCmd = &cobra.Command{
	Use:   "check-db",
	Short: "Connect to the configured database and count a user's records",
	Long: `Open the configured database (applying pending migrations), then
print how many records of each kind the given user owns.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkDBUser == "" {
			return errors.New("--user is required")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logging.Setup(os.Stderr, cfg)

		container, err := app.NewContainer(cfg)
		if err != nil {
			return err
		}
		defer container.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := container.UserRepo.GetByID(ctx, checkDBUser)
		if err != nil {
			return fmt.Errorf("user %s: %w", checkDBUser, err)
		}

		counts, err := container.SyncSvc.Counts(ctx, user.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\nUser: %s %s (%s)\n\n", cfg.DatabaseType(), user.Surname, user.Name, user.Phone)
		printCounts(cmd.OutOrStdout(), counts)
		return nil
	},
}

func init() {
	checkDBCmd.Flags().StringVar(&checkDBUser, "user", "", "id of the user to inspect")
}

// printCounts writes the per-kind record counts in sync order.
func printCounts(w io.Writer, counts domain.SyncCounts) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	total := 0
	for _, kind := range domain.SyncOrder {
		fmt.Fprintf(tw, "%s\t%d\n", kind, counts[kind])
		total += counts[kind]
	}
	fmt.Fprintf(tw, "total\t%d\n", total)
	tw.Flush()
}
