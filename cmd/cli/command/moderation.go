package command

import (
	"fmt"

	"buildhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

// Moderation commands. These hit the admin routes, so the stored token
// must belong to an admin account.

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Review abuse reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		reports, err := httpClient.ListReports(status, page, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}

		fmt.Printf("%d reports (page %d/%d)\n\n", reports.Total, reports.Page, reports.TotalPages)
		for _, r := range reports.Data {
			fmt.Printf("%s  [%s]  %s/%d  reason=%s  by=%s  %s\n",
				r.ID, r.Status, r.EntityKind, r.EntityID, r.Reason, r.ReporterUserID,
				r.CreatedAt.Format("2006-01-02 15:04"))
			if r.Description != "" {
				fmt.Printf("    %s\n", r.Description)
			}
		}
		return nil
	},
}

var reportsReviewCmd = &cobra.Command{
	Use:   "review <report-id>",
	Short: "Transition a report to a new status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		notes, _ := cmd.Flags().GetString("notes")

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		report, err := httpClient.ReviewReport(args[0], &client.ReviewReportRequest{
			Status:     status,
			AdminNotes: notes,
		})
		if err != nil {
			return fmt.Errorf("failed to review report: %w", err)
		}

		fmt.Printf("Report %s is now %s\n", report.ID, report.Status)
		if report.ReviewedBy != nil {
			fmt.Printf("Reviewed by %s at %s\n", *report.ReviewedBy, report.ReviewedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var flaggedCmd = &cobra.Command{
	Use:   "flagged <kind>",
	Short: "List flagged entities of one kind (car, build_list or part)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lookbackDays, _ := cmd.Flags().GetInt("lookback-days")
		minDownvotes, _ := cmd.Flags().GetInt("min-downvotes")

		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)

		flagged, err := httpClient.Flagged(args[0], lookbackDays, minDownvotes)
		if err != nil {
			return fmt.Errorf("failed to fetch flagged entities: %w", err)
		}

		fmt.Printf("%d flagged %s entities\n\n", flagged.Count, flagged.EntityKind)
		for _, e := range flagged.Entities {
			pending := ""
			if e.HasPendingReports {
				pending = "  [pending reports]"
			}
			fmt.Printf("#%d  down=%d (recent %d)  up=%d  score=%d  ratio=%.2f%s\n",
				e.EntityID, e.Downvotes, e.RecentDownvotes, e.Upvotes, e.Score, e.DownvoteRatio, pending)
		}
		return nil
	},
}

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show your remaining rate-limit quota",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)

		quota, err := httpClient.Quota()
		if err != nil {
			return fmt.Errorf("failed to fetch quota: %w", err)
		}

		fmt.Printf("Minute: %d remaining, resets %s\n", quota.MinuteRemaining, quota.MinuteResetAt.Format("15:04:05"))
		fmt.Printf("Hour:   %d remaining, resets %s\n", quota.HourRemaining, quota.HourResetAt.Format("15:04:05"))
		return nil
	},
}

func init() {
	reportsListCmd.Flags().String("status", "", "filter by status (pending, reviewed, resolved, dismissed)")
	reportsListCmd.Flags().Int("page", 1, "page number")
	reportsListCmd.Flags().Int("page-size", 20, "results per page")

	reportsReviewCmd.Flags().String("status", "", "new status (pending, reviewed, resolved, dismissed)")
	reportsReviewCmd.Flags().String("notes", "", "admin notes to attach")
	reportsReviewCmd.MarkFlagRequired("status")

	flaggedCmd.Flags().Int("lookback-days", 7, "recent-downvote window in days")
	flaggedCmd.Flags().Int("min-downvotes", 5, "downvote threshold")

	reportsCmd.AddCommand(reportsListCmd, reportsReviewCmd)
	rootCmd.AddCommand(reportsCmd, flaggedCmd, quotaCmd)
}
