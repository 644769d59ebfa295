package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and update the missed-question review queue",
	}

	cmd.AddCommand(newReviewListCmd())
	cmd.AddCommand(newReviewStatsCmd())
	cmd.AddCommand(newReviewRecordCmd())
	cmd.AddCommand(newReviewResolveCmd())
	return cmd
}

func newReviewListCmd() *cobra.Command {
	var (
		userID     int64
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unresolved missed questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.reviews.ListUnresolved(cmd.Context(), userID, categories)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("Review queue is empty.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  [%s | %s | %s]  misses=%d  last=%s\n",
					rec.QuestionID, rec.AircraftType, rec.Category, rec.Difficulty,
					rec.AttemptCount, rec.LastAttemptAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "narrow by category labels")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newReviewStatsCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the review queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.reviews.QueueStats(cmd.Context(), userID)
			if err != nil {
				return err
			}

			fmt.Printf("open: %d\nresolved: %d\nworst attempt count: %d\n",
				stats.Open, stats.Resolved, stats.MaxAttempts)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newReviewRecordCmd() *cobra.Command {
	var (
		userID     int64
		questionID string
		category   string
		difficulty string
		aircraft   string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an incorrect answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			return a.reviews.RecordIncorrect(cmd.Context(), userID, questionID,
				category, entities.Difficulty(difficulty), entities.AircraftType(aircraft))
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().StringVar(&questionID, "question", "", "question ID")
	cmd.Flags().StringVar(&category, "category", "", "category label at the time of failure")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "question difficulty")
	cmd.Flags().StringVar(&aircraft, "aircraft", "", "aircraft type tag")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func newReviewResolveCmd() *cobra.Command {
	var (
		userID     int64
		questionID string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Mark a missed question as resolved",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			return a.reviews.MarkResolved(cmd.Context(), userID, questionID)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().StringVar(&questionID, "question", "", "question ID")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}
