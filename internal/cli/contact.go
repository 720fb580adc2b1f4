package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/tend/internal/garden"
)

var (
	contactType    string
	contactChannel string
)

var contactCmd = &cobra.Command{
	Use:   "contact [name]",
	Short: "Record that you reached out to someone",
	Long:  "Record a contact. --type regular is the default; deep is a high-effort connection worth more points; quick spends a rate-limited quick-touch token.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runContact,
}

func runContact(cmd *cobra.Command, args []string) error {
	var action garden.ContactType
	switch strings.ToLower(contactType) {
	case "regular":
		action = garden.Regular
	case "deep":
		action = garden.Deep
	case "quick":
		action = garden.Quick
	default:
		return fmt.Errorf("unknown contact type %q (regular, deep or quick)", contactType)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f, err := findFriend(db, strings.Join(args, " "))
	if err != nil {
		return err
	}

	res := garden.ProcessContact(*f, action, contactChannel, time.Now())
	if !res.Changed {
		fmt.Printf("No quick touches available for %s. Earn one with two regular contacts.\n", f.Name)
		return nil
	}

	if err := db.SaveFriend(res.Friend); err != nil {
		return fmt.Errorf("save friend: %w", err)
	}

	fb := res.Feedback
	fmt.Printf("%s: %+d points (score %d). %s.\n", f.Name, fb.ScoreDelta, fb.NewScore, fb.TimerEffect)
	if fb.TokenChange > 0 {
		fmt.Println("Earned a quick touch.")
	}
	return nil
}

var unlogCmd = &cobra.Command{
	Use:   "unlog [name] [log-id]",
	Short: "Remove a logged contact and recompute",
	Args:  cobra.ExactArgs(2),
	RunE:  runUnlog,
}

func runUnlog(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	f, err := findFriend(db, args[0])
	if err != nil {
		return err
	}

	updated := garden.RemoveLog(*f, args[1])
	if err := db.SaveFriend(updated); err != nil {
		return fmt.Errorf("save friend: %w", err)
	}

	fmt.Printf("%s: %d logs, score %d.\n", updated.Name, len(updated.Logs), updated.IndividualScore)
	return nil
}

func init() {
	contactCmd.Flags().StringVarP(&contactType, "type", "t", "regular", "Contact type: regular, deep or quick")
	contactCmd.Flags().StringVar(&contactChannel, "channel", "", "How you reached out (call, text, ...)")
}
