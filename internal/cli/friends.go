package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lazypower/tend/internal/garden"
	"github.com/lazypower/tend/internal/store"
)

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("TEND_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

// findFriend resolves a name argument to a stored friend.
func findFriend(db *store.DB, name string) (*garden.Friend, error) {
	f, err := db.GetFriendByName(name)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("no friend named %q, try 'tend friends list'", name)
	}
	return f, nil
}

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Manage the people you tend",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all friends with score and status",
	RunE:  runFriendsList,
}

func runFriendsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	friends, err := db.ListFriends()
	if err != nil {
		return fmt.Errorf("list friends: %w", err)
	}
	if len(friends) == 0 {
		fmt.Println("No friends yet. Add one with 'tend friends add'.")
		return nil
	}

	now := time.Now()
	for _, f := range friends {
		status := garden.ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now)
		marker := " "
		if status.IsOverdue {
			marker = "!"
		}
		line := fmt.Sprintf("%s %-24s score %3d  every %dd", marker, f.Name, f.IndividualScore, f.FrequencyDays)
		if status.IsOverdue {
			line += fmt.Sprintf("  overdue %dd", status.DaysOverdue())
		} else {
			line += fmt.Sprintf("  due in %dd", status.DaysLeft)
		}
		if f.Category != "" {
			line += "  [" + f.Category + "]"
		}
		fmt.Println(line)
	}
	return nil
}

var (
	addFrequency int
	addCategory  string
)

var friendsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a friend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFriendsAdd,
}

func runFriendsAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	if addFrequency < 1 {
		return fmt.Errorf("frequency must be at least 1 day")
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f := garden.NewFriend(uuid.NewString(), name, addFrequency, time.Now())
	f.Category = addCategory
	if err := db.CreateFriend(f); err != nil {
		return fmt.Errorf("create friend: %w", err)
	}

	fmt.Printf("Added %s (every %d days).\n", f.Name, f.FrequencyDays)
	return nil
}

var friendsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one friend's details and history",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFriendsShow,
}

func runFriendsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f, err := findFriend(db, strings.Join(args, " "))
	if err != nil {
		return err
	}

	now := time.Now()
	status := garden.ComputeTimeStatus(f.LastContacted, f.FrequencyDays, now)

	fmt.Printf("## %s\n\n", f.Name)
	if f.Category != "" {
		fmt.Printf("  category:   %s\n", f.Category)
	}
	fmt.Printf("  score:      %d\n", f.IndividualScore)
	fmt.Printf("  cadence:    every %d days\n", f.FrequencyDays)
	fmt.Printf("  freshness:  %.0f%%\n", status.PercentageLeft)
	if status.IsOverdue {
		fmt.Printf("  overdue by: %d days\n", status.DaysOverdue())
	} else {
		fmt.Printf("  due:        %s\n", status.GoalDate.Format("Mon Jan 2"))
	}
	fmt.Printf("  quick touches available: %d\n", f.QuickTouchesAvailable)

	if len(f.Logs) > 0 {
		fmt.Println("\n  recent contacts:")
		limit := len(f.Logs)
		if limit > 10 {
			limit = 10
		}
		for _, l := range f.Logs[:limit] {
			fmt.Printf("    %s  %-7s  %+d  (%s)\n",
				l.Timestamp.Format("2006-01-02"), l.Type, l.ScoreDelta, l.ID)
		}
	}
	return nil
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a friend and their history",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFriendsRemove,
}

func runFriendsRemove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f, err := findFriend(db, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := db.DeleteFriend(f.ID); err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	fmt.Printf("Removed %s.\n", f.Name)
	return nil
}

func init() {
	friendsCmd.AddCommand(friendsListCmd)
	friendsCmd.AddCommand(friendsAddCmd)
	friendsCmd.AddCommand(friendsShowCmd)
	friendsCmd.AddCommand(friendsRemoveCmd)

	friendsAddCmd.Flags().IntVarP(&addFrequency, "frequency", "f", 14, "Target days between contacts")
	friendsAddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category label (e.g. Family)")
}
