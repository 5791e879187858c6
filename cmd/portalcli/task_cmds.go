package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"ftms-portal/internal/core/domain"

	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, inspect and act on tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(),
		newTasksShowCmd(),
		newTasksCreateCmd(),
		newTasksStartCmd(),
		newTasksSubmitCmd(),
		newTasksReviewCmd(),
		newTasksHistoryCmd(),
	)
	return cmd
}

func newTasksListCmd() *cobra.Command {
	var status string
	var userID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
				return err
			}

			var tasks []domain.Task
			if userID != 0 {
				tasks, err = a.tasks.ListByUser(cmd.Context(), userID, domain.TaskStatus(status))
			} else {
				tasks, err = a.tasks.List(cmd.Context(), domain.TaskStatus(status))
			}
			if err != nil {
				return err
			}
			printTaskTable(tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (PENDING, IN_PROGRESS, SUBMITTED, OVERDUE, COMPLETED)")
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "list tasks assigned to this user id")
	return cmd
}

func newTasksShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := taskCommandSetup(cmd, args)
			if err != nil {
				return err
			}

			task, err := a.tasks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printTaskDetail(task)
			return nil
		},
	}
	return cmd
}

func newTasksCreateCmd() *cobra.Command {
	var title, description, due string
	var assignee int64
	var priority int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and assign a new task (HOD/ADMIN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireRoute(cmd.Context(), "/tasks/create"); err != nil {
				return err
			}

			// Domain validation lives here, not in the API facade.
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("title is required")
			}
			if assignee == 0 {
				return fmt.Errorf("--assignee is required")
			}
			dueAt, err := parseDue(due)
			if err != nil {
				return err
			}

			draft := domain.TaskDraft{
				Title:            title,
				Description:      description,
				DueAt:            dueAt,
				AssignedToUserID: assignee,
			}
			if cmd.Flags().Changed("priority") {
				draft.Priority = &priority
			}

			task, err := a.tasks.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created task #%d %q assigned to %s\n", task.ID, task.Title, task.AssignedTo.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "task title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or RFC3339, required)")
	cmd.Flags().Int64VarP(&assignee, "assignee", "a", 0, "user id of the assignee (required)")
	cmd.Flags().IntVarP(&priority, "priority", "P", 3, "priority, 1 (high) to 5 (low)")
	return cmd
}

func newTasksStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start working on an assigned task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := taskCommandSetup(cmd, args)
			if err != nil {
				return err
			}

			task, err := a.tasks.Start(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Task #%d is now %s\n", task.ID, task.Status)
			return nil
		},
	}
}

func newTasksSubmitCmd() *cobra.Command {
	var summary string
	var links []string

	cmd := &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit completed work for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := taskCommandSetup(cmd, args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(summary) == "" {
				return fmt.Errorf("--summary is required")
			}

			task, err := a.tasks.Submit(cmd.Context(), id, summary, links)
			if err != nil {
				return err
			}
			fmt.Printf("Task #%d submitted for review\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "m", "", "summary of the submitted work (required)")
	cmd.Flags().StringArrayVarP(&links, "link", "l", nil, "reference link (repeatable)")
	return cmd
}

func newTasksReviewCmd() *cobra.Command {
	var approve, reject bool
	var note string

	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Approve or reject a submitted task (HOD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := taskCommandSetup(cmd, args)
			if err != nil {
				return err
			}
			if approve == reject {
				return fmt.Errorf("pass exactly one of --approve or --reject")
			}

			decision := domain.DecisionApproved
			if reject {
				decision = domain.DecisionRejected
			}

			sub, err := a.tasks.Review(cmd.Context(), id, decision, note)
			if err != nil {
				return err
			}
			fmt.Printf("Submission #%d on task #%d: %s\n", sub.ID, sub.TaskID, sub.Decision)
			return nil
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "approve the pending submission")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject the pending submission")
	cmd.Flags().StringVarP(&note, "note", "n", "", "decision note")
	return cmd
}

func newTasksHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the submission history of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := taskCommandSetup(cmd, args)
			if err != nil {
				return err
			}

			subs, err := a.tasks.Submissions(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSubmissions(subs)
			return nil
		},
	}
}

// taskCommandSetup covers the shared preamble of task subcommands:
// wiring, guard check, and id parsing.
func taskCommandSetup(cmd *cobra.Command, args []string) (*app, int64, error) {
	a, err := newApp()
	if err != nil {
		return nil, 0, err
	}
	if err := a.requireRoute(cmd.Context(), "/tasks"); err != nil {
		return nil, 0, err
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return a, id, nil
}

func parseDue(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("--due is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// End of day, local time.
		return t.Add(24*time.Hour - time.Second), nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (want YYYY-MM-DD or RFC3339)", raw)
}

func printTaskTable(tasks []domain.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNED TO")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority,
			t.DueAt.Local().Format("2006-01-02 15:04"), t.AssignedTo.Name)
	}
	w.Flush()
}

func printTaskDetail(t *domain.Task) {
	fmt.Printf("Task #%d: %s\n", t.ID, t.Title)
	fmt.Printf("  Status:      %s", t.Status)
	if t.Locked {
		fmt.Print(" (locked)")
	}
	fmt.Println()
	fmt.Printf("  Priority:    %d\n", t.Priority)
	fmt.Printf("  Due:         %s\n", t.DueAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Assigned to: %s <%s> (%s, %s)\n",
		t.AssignedTo.Name, t.AssignedTo.Email, t.AssignedTo.Role, t.AssignedTo.Department)
	fmt.Printf("  Assigned by: %s <%s>\n", t.AssignedBy.Name, t.AssignedBy.Email)
	if t.Description != "" {
		fmt.Printf("  Description: %s\n", t.Description)
	}
}

func printSubmissions(subs []domain.Submission) {
	if len(subs) == 0 {
		fmt.Println("No submissions yet")
		return
	}
	for _, s := range subs {
		fmt.Printf("#%d submitted by %s at %s [%s]\n",
			s.ID, s.SubmittedBy.Name, s.SubmittedAt.Local().Format("2006-01-02 15:04"), s.Decision)
		fmt.Printf("   %s\n", s.Summary)
		for _, link := range s.Links {
			fmt.Printf("   - %s\n", link)
		}
		if s.DecisionNote != "" {
			fmt.Printf("   note: %s\n", s.DecisionNote)
		}
	}
}
