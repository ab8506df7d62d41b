// Command admin provides operator tasks for a postboard database.
package main

import (
	"fmt"
	"os"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/repository"
	"postboard/internal/seed"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "postboard-admin",
		Short:         "Operator tasks for the postboard database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(seedCmd(connect), purgeCmd(connect))
	return rootCmd
}

type connector func() (*gorm.DB, error)

func connect() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return database.Connect(cfg)
}

func seedCmd(open connector) *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated posts and likes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Posts < 0 || opts.LikesPerPost < 0 {
				return fmt.Errorf("--posts and --likes-per-post must not be negative")
			}
			db, err := open()
			if err != nil {
				return err
			}
			defer closeDB(db)

			s := seed.NewSeeder(repository.NewPostRepository(db), repository.NewLikeRepository(db), opts)
			res, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts and %d likes\n", res.Posts, res.Likes)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Posts, "posts", 20, "Number of posts to create")
	cmd.Flags().IntVar(&opts.LikesPerPost, "likes-per-post", 5, "Maximum likes per post")
	cmd.Flags().IntVar(&opts.MaxDays, "max-days", 30, "Spread created_at over this many past days")
	cmd.Flags().Float64Var(&opts.ImageRatio, "image-ratio", 0.3, "Share of posts with an imageUrl")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed for reproducible data (0 = random)")
	return cmd
}

func purgeCmd(open connector) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every post and like",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("refusing to purge without --force")
			}
			db, err := open()
			if err != nil {
				return err
			}
			defer closeDB(db)

			removed, err := repository.NewPostRepository(db).Purge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d posts\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion of all data")
	return cmd
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
