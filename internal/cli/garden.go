package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/tend/internal/garden"
)

var gardenCmd = &cobra.Command{
	Use:   "garden",
	Short: "Show the overall garden score",
	RunE:  runGarden,
}

func runGarden(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	friends, err := db.ListFriends()
	if err != nil {
		return fmt.Errorf("list friends: %w", err)
	}
	meetings, err := db.ListMeetings()
	if err != nil {
		return fmt.Errorf("list meetings: %w", err)
	}

	now := time.Now()
	score := garden.GardenScore(friends, meetings, now)
	fmt.Printf("Garden score: %d/100 (%d friends)\n", score, len(friends))

	cohorts := garden.CohortStats(friends, now)
	if len(cohorts) == 0 {
		return nil
	}
	names := make([]string, 0, len(cohorts))
	for name := range cohorts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	for _, name := range names {
		c := cohorts[name]
		line := fmt.Sprintf("  %-16s %2d people, avg %3.0f", name, c.Count, c.AverageScore)
		if c.Overdue > 0 {
			line += fmt.Sprintf(", %d overdue", c.Overdue)
		}
		fmt.Println(line)
	}
	return nil
}

var nudgesCmd = &cobra.Command{
	Use:   "nudges",
	Short: "Show suggested cadence adjustments",
	RunE:  runNudges,
}

func runNudges(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	friends, err := db.ListFriends()
	if err != nil {
		return fmt.Errorf("list friends: %w", err)
	}

	nudges := garden.AllNudges(friends)
	if len(nudges) == 0 {
		fmt.Println("No nudges right now. Your cadences look right.")
		return nil
	}
	for _, n := range nudges {
		fmt.Printf("%s: %s cadence from %dd to %dd (%s)\n",
			n.FriendName, n.Direction, n.CurrentDays, n.SuggestedDays, n.Reason)
	}
	return nil
}
