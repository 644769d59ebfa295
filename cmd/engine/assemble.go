package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
	"github.com/aviaprep/typerating-engine/internal/session"
)

func newAssembleCmd() *cobra.Command {
	var (
		userID     int64
		aircraft   string
		categories []string
		difficulty string
		count      int
		mode       string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a question session from filter criteria",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if count == 0 {
				count = a.cfg.DefaultCount
			}

			filter := entities.SessionFilter{
				AircraftType: entities.AircraftType(aircraft),
				Categories:   categories,
				Difficulty:   entities.Difficulty(difficulty),
				Count:        count,
				Mode:         entities.SessionMode(mode),
			}
			if cmd.Flags().Changed("seed") {
				filter.Seed = &seed
			}

			sess, err := a.sessions.BuildSession(cmd.Context(), userID, filter)
			if errors.Is(err, session.ErrNoQuestionsAvailable) {
				fmt.Println("No questions matched the filter. Try broadening the criteria.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Session %s (%s), %d questions:\n\n", sess.ID, sess.Mode, len(sess.Questions))
			for i, q := range sess.Questions {
				fmt.Printf("%d. [%s | %s | %s] %s\n", i+1, q.AircraftType, q.Category, q.Difficulty, q.Text)
				for j, opt := range q.Options {
					fmt.Printf("   %c) %s\n", 'A'+j, opt)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	cmd.Flags().StringVar(&aircraft, "aircraft", "", "aircraft type tag (e.g. B737_FAMILY, ALL)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "category labels (repeatable)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty (beginner|intermediate|advanced)")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (defaults from config)")
	cmd.Flags().StringVar(&mode, "mode", "practice", "session mode (practice|timed|review)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for reproducible sampling")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
